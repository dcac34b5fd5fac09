package main

import (
	"github.com/iqbalShafiq/word-battle-game/internal/cli"
)

func main() {
	cli.Execute()
}
