package server

import (
	"net/http"
	"strings"

	orderdomain "github.com/classon/server/internal/order/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID := userFrom(c).ID
	order, err := s.orderSvc.Create(c.Request.Context(), orderdomain.Buyer{UserID: &userID}, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (s *Server) CreateCustomerOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customer := customerFrom(c)
	order, err := s.orderSvc.Create(c.Request.Context(), orderdomain.Buyer{CustomerID: &customer.ID, StoreID: customer.InstructorID}, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (s *Server) ListMyOrders(c *gin.Context) {
	orders, err := s.orderSvc.ListByUser(c.Request.Context(), userFrom(c).ID, pageFromQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) GetMyOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetForUser(c.Request.Context(), userFrom(c).ID, orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) ListInstructorOrders(c *gin.Context) {
	status := orderdomain.Status(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	orders, err := s.orderSvc.ListByInstructor(c.Request.Context(), instructorFrom(c).ID, status, pageFromQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) GetInstructorOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetForInstructor(c.Request.Context(), instructorFrom(c).ID, orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req orderdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Status = orderdomain.Status(strings.ToUpper(strings.TrimSpace(string(req.Status))))

	order, err := s.orderSvc.UpdateStatus(c.Request.Context(), instructorFrom(c).ID, orderID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (s *Server) DeleteOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.orderSvc.Delete(c.Request.Context(), instructorFrom(c).ID, orderID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (s *Server) OrderStats(c *gin.Context) {
	stats, err := s.orderSvc.GetStats(c.Request.Context(), instructorFrom(c).ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
