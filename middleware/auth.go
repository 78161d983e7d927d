package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	userRepo "huduma/database/repository/user"
	"huduma/utils"
)

// JWTAuthMiddleware authenticates requests via bearer token and puts the
// account id and role on the gin context. Token hashes are cached in redis;
// on a miss the account's existence is checked against the database.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil

		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash == computedHash {
					_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
					c.Set("userID", userID)
					c.Set("role", string(role))
					c.Next()
					return
				}
				// A different valid token for the same account; fall through
				// to the DB check rather than rejecting outright.
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		// Cache miss: confirm the account still exists.
		if _, err := users.GetByID(ctx, userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}

		if cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
		}

		c.Set("userID", userID)
		c.Set("role", string(role))
		c.Next()
	}
}
