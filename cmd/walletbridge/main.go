// Command walletbridge exposes the wallet operations on the command line.
package main

import "os"

func main() {
	c, root := newCLI()
	if err := c.execute(root); err != nil {
		os.Exit(1)
	}
}
