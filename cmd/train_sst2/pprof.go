package main

import "os"
import "os/signal"
import "runtime/pprof"
import "syscall"

func init() {
	for _, arg := range os.Args {
		if arg == "-pgo" || arg == "--pgo" {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGKILL)
			go func() {
				// collect profile data into default.pgo until interrupted
				f, _ := os.Create("default.pgo")
				pprof.StartCPUProfile(f)
				<-sigChan
				pprof.StopCPUProfile()
				f.Close()
				os.Exit(130)
			}()
			return
		}
	}
}
