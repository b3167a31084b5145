// Package logger builds the process-wide *slog.Logger.
//
// New applies Options over a JSON-at-info default. WithEnvironment picks the
// per-environment defaults, and WithContextExtractors lets other packages
// (requestid for one) add request-scoped attributes at log time without
// threading a logger through every call.
//
//	log := logger.New(
//		logger.WithEnvironment(logger.ParseEnvironment(cfg.AppEnv), "portal"),
//		logger.WithContextExtractors(requestid.LoggerExtractor),
//	)
//	log.InfoContext(ctx, "magic link sent", logger.Email(addr), logger.Event("magic_link.sent"))
//
// The attribute helpers keep key names consistent across the code base.
// Email masks the address so that logs carry no full addresses.
package logger
