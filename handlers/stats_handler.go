package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sweetshop/models"
	"sweetshop/sheetdb"
)

const statsCacheKey = "stats"

func orderDate(order models.Order) time.Time {
	t, err := time.Parse(time.RFC3339, order.CreatedAt)
	if err != nil {
		return time.Now()
	}
	return t
}

func isTerminalStatus(status models.OrderStatus) bool {
	switch status {
	case models.StatusDelivered, models.StatusCancelled, models.StatusRefunded:
		return true
	}
	return false
}

// startOfWeek truncates to the preceding Sunday.
func startOfWeek(t time.Time) time.Time {
	t = t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetStatsHandler aggregates the admin dashboard numbers: totals, active
// orders and the revenue/product charts. Served from the 60s cache when
// fresh.
func GetStatsHandler(c *gin.Context, store sheetdb.Store, rdb *redis.Client) {
	if data, ok := cacheGet(c, rdb, statsCacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	orders, err := store.GetAllOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}
	products, err := store.GetProducts(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}
	users, err := store.ListUsers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}

	userNames := map[string]string{}
	for _, user := range users {
		if user.Email != "" && user.Name != "" {
			userNames[user.Email] = user.Name
		}
	}

	totalRevenue := 0.0
	dailyRevenue := map[string]float64{}
	weeklyRevenue := map[string]float64{}
	monthlyRevenue := map[string]float64{}
	productSales := map[string]int{}

	// Show the last 7 days even when some had no sales.
	for i := 0; i < 7; i++ {
		day := time.Now().AddDate(0, 0, -i).Format("2006-01-02")
		dailyRevenue[day] = 0
	}

	var currentOrders []gin.H
	for _, order := range orders {
		amount := parseAmount(order.Amount)
		totalRevenue += amount

		date := orderDate(order)
		dayKey := date.Format("2006-01-02")
		if _, ok := dailyRevenue[dayKey]; ok {
			dailyRevenue[dayKey] += amount
		}
		weekKey := startOfWeek(date).Format("2006-01-02")
		weeklyRevenue[weekKey] += amount
		monthKey := date.Format("2006-01")
		monthlyRevenue[monthKey] += amount

		for _, item := range models.ParseOrderItems(order.Items) {
			name := item.Name
			if name == "" {
				name = "Unknown"
			}
			productSales[name] += item.Quantity
		}

		if !isTerminalStatus(order.Status) && len(currentOrders) < 10 {
			currentOrders = append(currentOrders, orderJSON(order, userNames))
		}
	}
	if currentOrders == nil {
		currentOrders = []gin.H{}
	}

	stats := gin.H{
		"totalOrders":   len(orders),
		"totalRevenue":  totalRevenue,
		"totalProducts": len(products),
		"totalUsers":    len(users),
		"currentOrders": currentOrders,
		"charts": gin.H{
			"daily":    dailyRevenue,
			"weekly":   weeklyRevenue,
			"monthly":  monthlyRevenue,
			"products": productSales,
		},
	}

	if data, err := json.Marshal(stats); err == nil {
		cacheSet(c, rdb, statsCacheKey, data)
	}
	c.JSON(http.StatusOK, stats)
}
