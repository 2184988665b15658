package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/classon/server/internal/customer/domain"
	instructordomain "github.com/classon/server/internal/instructor/domain"
	"github.com/classon/server/internal/tenantctx"
	"github.com/classon/server/internal/token"
	userdomain "github.com/classon/server/internal/user/domain"
	"github.com/gin-gonic/gin"
)

const (
	contextInstructorKey = "principal_instructor"
	contextUserKey       = "principal_user"
	contextCustomerKey   = "principal_customer"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// verifyKind authenticates the request and requires the token to name the
// given principal kind. A valid token of the wrong kind is rejected exactly
// like a bad one.
func (s *Server) verifyKind(c *gin.Context, kind token.UserType) (*token.Claims, error) {
	raw := bearerToken(c)
	if raw == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	if claims.UserType != kind {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (s *Server) InstructorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.verifyKind(c, token.UserTypeInstructor)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		instructor, err := s.instructorSvc.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !instructor.IsActive {
			AbortWithError(c, instructordomain.ErrInactive)
			return
		}

		c.Set(contextInstructorKey, instructor)
		c.Request = c.Request.WithContext(tenantctx.WithInstructorID(c.Request.Context(), instructor.ID))
		c.Next()
	}
}

func (s *Server) UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.verifyKind(c, token.UserTypeUser)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.userSvc.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !user.IsActive {
			AbortWithError(c, userdomain.ErrInactive)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func (s *Server) CustomerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.verifyKind(c, token.UserTypeCustomer)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		customerID, err := snowflake.ParseString(claims.CustomerID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		customer, err := s.customerSvc.GetByID(c.Request.Context(), customerID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		// The tenant claim must still match the row. A stale token from
		// before a store migration does not cross tenants.
		if claims.InstructorID != customer.InstructorID.String() {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !customer.IsActive {
			AbortWithError(c, customerdomain.ErrInactive)
			return
		}

		c.Set(contextCustomerKey, customer)
		c.Request = c.Request.WithContext(tenantctx.WithInstructorID(c.Request.Context(), customer.InstructorID))
		c.Next()
	}
}

func instructorFrom(c *gin.Context) *instructordomain.Instructor {
	value, ok := c.Get(contextInstructorKey)
	if !ok {
		return nil
	}
	instructor, _ := value.(*instructordomain.Instructor)
	return instructor
}

func userFrom(c *gin.Context) *userdomain.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*userdomain.User)
	return user
}

func customerFrom(c *gin.Context) *customerdomain.Customer {
	value, ok := c.Get(contextCustomerKey)
	if !ok {
		return nil
	}
	customer, _ := value.(*customerdomain.Customer)
	return customer
}
