// This program performs operator tasks against a running ledger node.
package main

import (
	"github.com/tallychain/tallychain/app/tooling/admin/commands"
)

func main() {
	commands.Execute()
}
