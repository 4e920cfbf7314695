// hrctl is the operator CLI for the employee store.
//
//	hrctl --db storage/employees.db list --status Active
//	hrctl print --html > employees.html
package main

import (
	"fmt"
	"os"

	"github.com/aanand-mishra/employees-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
