package main

import "github.com/dmitrijs2005/interviewkeeper/internal/ikctl"

func main() {
	ikctl.Execute()
}
