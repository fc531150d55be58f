// Command vlogman scaffolds episode folders for a recurring vlog.
//
// Run it from the directory that holds vlog-manager.json:
//
//	vlogman -d 2019-01-01 -t 'Getting A Lip Tattoo' -s 3 -e 12
//
// The root command keeps its own argument syntax and hands the raw tokens to
// internal/cliargs. The seasons, history, config, and version subcommands are
// regular cobra commands.
package main
