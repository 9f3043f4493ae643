// Package logger provides structured JSON logging over zap.
//
// Libraries accept a [Logger] and default to [NewNop]; commands build one
// with [New]. Field helpers mirror zap's:
//
//	log.Info("scan complete", logger.String("run_id", id), logger.Int("candidates", n))
package logger
