package main

import (
	"fmt"
	"os"

	"fjacquet/statement-ledger/cmd/categories"
	"fjacquet/statement-ledger/cmd/export"
	"fjacquet/statement-ledger/cmd/ingest"
	"fjacquet/statement-ledger/cmd/recategorize"
	"fjacquet/statement-ledger/cmd/root"
	"fjacquet/statement-ledger/cmd/rule"
	"fjacquet/statement-ledger/cmd/suggest"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(recategorize.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(rule.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
