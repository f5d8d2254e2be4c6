package main

import "github.com/Aather-nabi/EDA-HIGGS/cmd"

func main() {
	cmd.Execute()
}
