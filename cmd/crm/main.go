// Command crm manages validated customer contact records.
package main

import "github.com/mesh-intelligence/crm/internal/cli"

func main() {
	cli.Execute()
}
