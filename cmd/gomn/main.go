// Package main provides the gomn CLI: a network capability firewall for
// third-party modules.
package main

func main() {
	Execute()
}
