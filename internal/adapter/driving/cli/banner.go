package cli

import (
	"fmt"

	"github.com/diillson/roreports-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ____   ___    ____                       _
  |  _ \ / _ \  |  _ \ ___ _ __   ___  _ __| |_ ___
  | |_) | | | | | |_) / _ \ '_ \ / _ \| '__| __/ __|
  |  _ <| |_| | |  _ <  __/ |_) | (_) | |  | |_\__ \
  |_| \_\\___/  |_| \_\___| .__/ \___/|_|   \__|___/
                          |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("RO Reports CLI (v%s)", formattedVersion)))
}
