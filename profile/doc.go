// Package profile adds pprof output to CLI commands.
//
// Merging is single-threaded and I/O bound, so only the CPU, heap, and
// allocs profiles are offered. Typical usage:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	p := cfg.NewProfiler()
//
//	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
//	    return p.Start()
//	}
//	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
//	    return errors.Join(run(cmd, args), p.Stop())
//	}
//
// Stop from RunE rather than a post-run hook: cobra skips post-run hooks
// when RunE fails, which would leave the CPU profile unflushed.
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile
