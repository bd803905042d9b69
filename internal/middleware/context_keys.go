package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin
// context. Authentication itself is handled upstream of this service; the
// actor id arrives on a trusted header.
const actorIDKey = contextKey("actorID")

const actorIDHeader = "X-Actor-ID"

// ActorIDMiddleware copies the upstream actor id header into the Gin
// context so handlers can attribute mutations.
func ActorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor := c.GetHeader(actorIDHeader); actor != "" {
			c.Set(string(actorIDKey), actor)
		}
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}

	actorID, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
