package main

import (
	"schedulestorm-backend/cmd/storm-cli/commands"
	"schedulestorm-backend/lib/serviceutil"
	"schedulestorm-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	commands.ExecuteContext(serviceutil.SignalContext())
}
