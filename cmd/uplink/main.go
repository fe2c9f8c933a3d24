package main

import (
	uplinkcmd "github.com/uplink-social/uplink/cmd"
)

func main() {
	uplinkcmd.Main()
}
