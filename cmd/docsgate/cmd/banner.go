package cmd

import (
	"fmt"
)

const banner = `
  _____                  _____       _
 |  __ \                / ____|     | |
 | |  | | ___   ___ ___| |  __  __ _| |_ ___
 | |  | |/ _ \ / __/ __| | |_ |/ _` + "`" + ` | __/ _ \
 | |__| | (_) | (__\__ \ |__| | (_| | ||  __/
 |_____/ \___/ \___|___/\_____|\__,_|\__\___|

`

func printBanner() {
	fmt.Printf("\x1b[34m%s\x1b[0m", banner)
	fmt.Printf("\x1b[32m  Documentation Portal Auth Service - Version %s\x1b[0m\n\n", Version)
}
