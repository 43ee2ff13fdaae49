// Package pathao is a Go client for the Pathao Courier merchant API.
//
// A [Client] is built from a [Config] resolved in priority order:
// explicitly set fields, then PATHAO_* environment variables, then
// built-in defaults. The zero Config plus environment variables is the
// common production setup; [SandboxConfig] gives instant access to the
// public test environment.
//
//	client, err := pathao.NewClient(ctx, pathao.SandboxConfig())
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cities, err := client.Stores().GetCities(ctx)
//
// For work scoped to a single function, [WithClient] closes the client
// automatically:
//
//	err := pathao.WithClient(ctx, cfg, func(c *pathao.Client) error {
//		_, err := c.Stores().GetCityID(ctx, "Dhaka")
//		return err
//	})
//
// Location lookups (GetCityID, GetZoneID, GetAreaID) resolve names to
// Pathao identifiers through a bulk-prefetch cache: the first lookup
// fetches the whole list once, later lookups are in-memory. Setting
// Config.CachePath persists the cache to SQLite so it survives
// restarts.
package pathao
