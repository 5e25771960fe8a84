// Package blibsend provides a client for the Blibsend WhatsApp messaging API.
//
// The integration is optional: it activates only when BLIBSEND_BASE_URL and
// the client credentials are all configured, and the application runs without
// messaging when they are not.
//
// Authentication uses HTTP Basic signin against /auth/signin. The returned
// bearer token is cached until shortly before it expires and renewed
// transparently; a request rejected with 401 triggers exactly one re-signin
// and retry, matching how the vendor invalidates tokens server-side.
//
// Usage:
//
//	var cfg blibsend.Config
//	config.MustLoad(&cfg)
//
//	if cfg.Enabled() {
//		client, err := blibsend.New(cfg)
//		if err != nil {
//			return err
//		}
//		if err := client.SendText(ctx, "order shipped", "5562999990000"); err != nil {
//			log.Error("send failed", logger.Error(err))
//		}
//	}
package blibsend
