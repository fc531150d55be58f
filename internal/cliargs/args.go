package cliargs

import (
	"time"

	"golang.org/x/text/unicode/norm"

	"vlogman/internal/faults"
)

// Flag pairs the short and long spelling of one recognized option.
type Flag struct {
	Short string
	Long  string
}

var (
	HelpFlag    = Flag{Short: "-h", Long: "--help"}
	DateFlag    = Flag{Short: "-d", Long: "--date"}
	TitleFlag   = Flag{Short: "-t", Long: "--title"}
	SeasonFlag  = Flag{Short: "-s", Long: "--season"}
	EpisodeFlag = Flag{Short: "-e", Long: "--episode"}
)

func (f Flag) String() string {
	return f.Short + " | " + f.Long
}

// Invocation is the parsed form of one command line.
type Invocation struct {
	Help bool

	Date time.Time

	// Title is NFC-normalised so the directory name and rendered templates
	// carry the same bytes.
	Title string

	// Season and Episode hold the raw token; empty means not supplied.
	Season  string
	Episode string
}

// HasSeason reports whether a season was given on the command line.
func (inv Invocation) HasSeason() bool { return inv.Season != "" }

// HasEpisode reports whether an episode number was given on the command line.
func (inv Invocation) HasEpisode() bool { return inv.Episode != "" }

// Parser turns raw tokens into an Invocation. Now supplies the current local
// time for relative date keywords; nil means time.Now.
type Parser struct {
	Now func() time.Time
}

// Parse scans args (program name excluded). A help flag anywhere wins over
// everything else, including invalid values for other flags.
func (p Parser) Parse(args []string) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, faults.Wrap(faults.ErrUsage, "", "Expected at least one argument.", nil)
	}

	if _, found := lookup(args, HelpFlag); found {
		return Invocation{Help: true}, nil
	}

	rawDate, used := lookupValue(args, DateFlag)
	if rawDate == nil {
		return Invocation{}, faults.Wrap(faults.ErrMissingArgument, "", "Missing required date argument ( "+DateFlag.String()+" )", nil)
	}
	date, err := resolveDate(*rawDate, p.now())
	if err != nil {
		return Invocation{}, faults.Wrap(faults.ErrInvalidArgument, "Error for argument "+used, "", err)
	}

	inv := Invocation{Date: date}
	if title, _ := lookupValue(args, TitleFlag); title != nil {
		inv.Title = norm.NFC.String(*title)
	}
	if season, _ := lookupValue(args, SeasonFlag); season != nil {
		inv.Season = *season
	}
	if episode, _ := lookupValue(args, EpisodeFlag); episode != nil {
		inv.Episode = *episode
	}
	return inv, nil
}

func (p Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// lookup finds the first occurrence of the short form, falling back to the
// long form. It returns the index and the spelling that matched.
func lookup(args []string, flag Flag) (int, bool) {
	for _, form := range []string{flag.Short, flag.Long} {
		for i, arg := range args {
			if arg == form {
				return i, true
			}
		}
	}
	return -1, false
}

// lookupValue returns the token following the flag. A flag in last position
// has no value and is reported as absent.
func lookupValue(args []string, flag Flag) (*string, string) {
	idx, found := lookup(args, flag)
	if !found {
		return nil, ""
	}
	used := args[idx]
	if idx+1 >= len(args) {
		return nil, used
	}
	value := args[idx+1]
	return &value, used
}
