// Command roulette draws weighted items from the terminal and builds or
// reads share links.
package main

import "github.com/xtding233/roulette/internal/cli"

func main() {
	cli.Execute()
}
