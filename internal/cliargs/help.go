package cliargs

import (
	"fmt"
	"strings"
)

// Help renders the usage screen shown for -h, --help, and usage errors.
func Help(program, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vlog Manager %s\n\n", version)
	b.WriteString("Example usage:\n")
	fmt.Fprintf(&b, "  %s -d 2019-01-01 [-t 'Getting A Lip Tattoo'] [-s 3] [-e 12]\n\n", program)
	b.WriteString("Arguments:\n")
	fmt.Fprintf(&b, "  %s\tDisplay this Help screen. Disables other arguments.\n", HelpFlag)
	fmt.Fprintf(&b, "  %s\tDate of recording (required).\n", DateFlag)
	b.WriteString("             \tValues:\n")
	b.WriteString("             \t  - ISO 8601 date without a time component, e.g. 2019-01-01\n")
	fmt.Fprintf(&b, "             \t  - A relative day keyword: '%s' or '%s'\n", KeywordToday, KeywordYesterday)
	fmt.Fprintf(&b, "  %s\tTitle\n", TitleFlag)
	fmt.Fprintf(&b, "  %s\tSeason number. Corresponds to target directory.\n", SeasonFlag)
	b.WriteString("               \tDefaults to latest season directory.\n")
	fmt.Fprintf(&b, "  %s\tEpisode number. For use in description.md.\n", EpisodeFlag)
	b.WriteString("\nCommands:\n")
	b.WriteString("  seasons\tList season directories\n")
	b.WriteString("  history\tList previously scaffolded episodes\n")
	b.WriteString("  config \tCreate or validate configuration files\n")
	return b.String()
}
