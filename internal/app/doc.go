// Package app is the composition root for nimbus.
//
// Run wires the pieces together and blocks in the TUI:
//
//	config.Load()          viper: file, then NIMBUS_* env
//	logger.New()           zap, console lines in the log file
//	prefs.Load()           theme and units from prefs.toml
//	units.NewStore()       toggles write back through prefs.Update
//	demoapi.Start()        only with --demo, loopback chi server
//	weatherapi.NewClient() timeout, rate limit, request logging
//	ui.Run()               Bubble Tea program (blocks)
//
// Errors before the TUI starts are returned. Once it runs, collaborator
// failures are handled by the session controller and only reach the log
// file and the screen.
package app
