package tenantcontext

import "github.com/gofiber/fiber/v2"

// Locals key the API key middleware stores the tenant context under.
const LocalsKey = "TENANT_CONTEXT"

// TenantContext identifies the tenant a request is acting for.
type TenantContext struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Authorized bool   `json:"authorized"`
}

// Get retrieves the tenant context from the fiber context.
// Returns an unauthorized context if none is set.
func Get(c *fiber.Ctx) TenantContext {
	if ctx := c.Locals(LocalsKey); ctx != nil {
		return ctx.(TenantContext)
	}
	return TenantContext{Authorized: false}
}

// TenantID returns the current tenant's public id, or empty string.
func TenantID(c *fiber.Ctx) string {
	return Get(c).TenantID
}
