// tabguard - keep distracting sites out of your working hours.
package main

import (
	"github.com/manav03panchal/tabguard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Die(err)
	}
}
