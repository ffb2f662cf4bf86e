package rayid

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName carries the RayID on requests and responses.
	HeaderName = "X-Ray-ID"
	// LocalsKey is where the RayID is stored on the Fiber context.
	LocalsKey = "ray_id"
)

// validID bounds caller-supplied ids before they reach log lines.
var validID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// New returns a middleware assigning every request a RayID. A well-formed
// incoming X-Ray-ID header is reused so callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if !validID.MatchString(id) {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
