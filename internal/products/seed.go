package products

import (
	"github.com/shopspring/decimal"

	"github.com/urbanthreads/storefront-backend/pkg/db/models"
)

// seedCatalog is the launch catalog. IDs are stable and referenced by
// existing orders, so entries are never renumbered.
func seedCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Category: "clothes", Name: "Urban Essential Tee", Price: decimal.NewFromInt(28),
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop&crop=center",
			Description: "Comfortable cotton blend t-shirt perfect for everyday wear"},
		{ID: 2, Category: "clothes", Name: "Minimalist Hoodie", Price: decimal.NewFromInt(45),
			Image:       "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400&h=400&fit=crop&crop=center",
			Description: "Premium quality hoodie with modern cut and feel"},
		{ID: 3, Category: "clothes", Name: "Street Style Jacket", Price: decimal.NewFromInt(50),
			Image:       "https://images.unsplash.com/photo-1544022613-e87ca75a784a?w=400&h=400&fit=crop&crop=center",
			Description: "Versatile jacket that pairs with any outfit"},
		{ID: 4, Category: "clothes", Name: "Classic Joggers", Price: decimal.NewFromInt(35),
			Image:       "https://images.unsplash.com/photo-1506629905607-d9b0b5a6f2f5?w=400&h=400&fit=crop&crop=center",
			Description: "Comfortable joggers for casual and athletic wear"},
		{ID: 5, Category: "clothes", Name: "Urban Tank Top", Price: decimal.NewFromInt(22),
			Image:       "https://images.unsplash.com/photo-1503341338985-b019968ba004?w=400&h=400&fit=crop&crop=center",
			Description: "Lightweight tank perfect for summer days"},
		{ID: 6, Category: "socks", Name: "Comfort Crew Socks", Price: decimal.NewFromInt(20),
			Image:       "https://images.unsplash.com/photo-1586350977771-b3b0abd50c82?w=400&h=400&fit=crop&crop=center",
			Description: "Ultra-soft crew socks for all-day comfort"},
		{ID: 7, Category: "socks", Name: "Athletic Performance Socks", Price: decimal.NewFromInt(25),
			Image:       "https://images.unsplash.com/photo-1544966503-7cc5ac882d5f?w=400&h=400&fit=crop&crop=center",
			Description: "Moisture-wicking socks for active lifestyles"},
		{ID: 8, Category: "socks", Name: "Minimalist Ankle Socks", Price: decimal.NewFromInt(18),
			Image:       "https://images.unsplash.com/photo-1559709120-6867ecc1f9b6?w=400&h=400&fit=crop&crop=center",
			Description: "Low-profile ankle socks with clean design"},
		{ID: 9, Category: "socks", Name: "Cozy Wool Blend Socks", Price: decimal.NewFromInt(30),
			Image:       "https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?w=400&h=400&fit=crop&crop=center",
			Description: "Warm and comfortable wool blend for cold days"},
		{ID: 10, Category: "socks", Name: "Pattern Play Socks", Price: decimal.NewFromInt(23),
			Image:       "https://images.unsplash.com/photo-1505022610485-0249ba5b3675?w=400&h=400&fit=crop&crop=center",
			Description: "Stylish patterned socks to add flair to any outfit"},
		{ID: 11, Category: "books", Name: "Urban Style Guide", Price: decimal.NewFromInt(32),
			Image:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=400&fit=crop&crop=center",
			Description: "Complete guide to modern urban fashion and lifestyle"},
		{ID: 12, Category: "books", Name: "Street Photography Collection", Price: decimal.NewFromInt(40),
			Image:       "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=400&fit=crop&crop=center",
			Description: "Inspiring collection of urban street photography"},
		{ID: 13, Category: "books", Name: "Minimalist Living", Price: decimal.NewFromInt(26),
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop&crop=center",
			Description: "Guide to simplified, intentional living"},
		{ID: 14, Category: "books", Name: "Creative Inspiration", Price: decimal.NewFromInt(35),
			Image:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=400&fit=crop&crop=center",
			Description: "Fuel your creative journey with this inspiring read"},
		{ID: 15, Category: "books", Name: "Urban Culture Journal", Price: decimal.NewFromInt(24),
			Image:       "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=400&h=400&fit=crop&crop=center",
			Description: "Explore the pulse of city culture and trends"},
		{ID: 16, Category: "shoes", Name: "Urban Sneakers", Price: decimal.NewFromInt(48),
			Image:       "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400&h=400&fit=crop&crop=center",
			Description: "Versatile sneakers for city adventures"},
		{ID: 17, Category: "shoes", Name: "Minimalist Loafers", Price: decimal.NewFromInt(42),
			Image:       "https://images.unsplash.com/photo-1584634644929-c4aa3d4af4e2?w=400&h=400&fit=crop&crop=center",
			Description: "Clean, comfortable loafers for professional wear"},
		{ID: 18, Category: "shoes", Name: "Street Style Boots", Price: decimal.NewFromInt(50),
			Image:       "https://images.unsplash.com/photo-1605348532760-6753d2c43329?w=400&h=400&fit=crop&crop=center",
			Description: "Durable boots with urban aesthetic"},
		{ID: 19, Category: "shoes", Name: "Athletic Runners", Price: decimal.NewFromInt(45),
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=400&fit=crop&crop=center",
			Description: "Performance running shoes for active lifestyles"},
		{ID: 20, Category: "shoes", Name: "Canvas Casuals", Price: decimal.NewFromInt(35),
			Image:       "https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?w=400&h=400&fit=crop&crop=center",
			Description: "Comfortable canvas shoes for everyday wear"},
	}
}
