package main

import "github.com/PhucLH2303/RentEase-sub000/cli"

func main() {
	cli.Execute()
}
