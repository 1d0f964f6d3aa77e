package main

import nurseaid "github.com/saadjs/nurse-aid/cmd/nurseaid"

func main() {
	nurseaid.Execute()
}
