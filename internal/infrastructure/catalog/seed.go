package catalog

import "github.com/sareefinder/backend/internal/domain"

const (
	imageBanarasi   = "https://images.unsplash.com/photo-1610189020382-9a4a4a5fdfc9?q=80&w=400&auto=format&fit=crop"
	imageKanjivaram = "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?q=80&w=400&auto=format&fit=crop"
)

// Seed returns the built-in catalog used when no catalog file is configured
func Seed() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID:          "1",
			Name:        "Banarasi Silk Saree",
			Description: "Traditional Banarasi silk saree with intricate gold zari work, perfect for wedding ceremonies.",
			Price:       "₹12,999",
			Image:       imageBanarasi,
			Color:       "Red",
			Material:    "Silk",
			Occasion:    "Wedding",
			Link:        "#",
		},
		{
			ID:          "2",
			Name:        "Kanjivaram Silk Saree",
			Description: "Pure Kanjivaram silk saree with traditional temple border and rich pallu design.",
			Price:       "₹15,499",
			Image:       imageKanjivaram,
			Color:       "Purple",
			Material:    "Silk",
			Occasion:    "Festival",
			Link:        "#",
		},
		{
			ID:          "3",
			Name:        "Cotton Handloom Saree",
			Description: "Lightweight cotton handloom saree with contemporary prints, ideal for daily wear.",
			Price:       "₹2,499",
			Image:       imageKanjivaram,
			Color:       "Blue",
			Material:    "Cotton",
			Occasion:    "Casual",
			Link:        "#",
		},
		{
			ID:          "4",
			Name:        "Georgette Printed Saree",
			Description: "Lightweight georgette saree with modern floral prints and sequin embellishments.",
			Price:       "₹3,999",
			Image:       imageBanarasi,
			Color:       "Green",
			Material:    "Georgette",
			Occasion:    "Party",
			Link:        "#",
		},
		{
			ID:          "5",
			Name:        "Patola Silk Saree",
			Description: "Traditional Gujarati Patola silk saree with geometric patterns and vibrant colors.",
			Price:       "₹18,999",
			Image:       imageKanjivaram,
			Color:       "Yellow",
			Material:    "Silk",
			Occasion:    "Wedding",
			Link:        "#",
		},
		{
			ID:          "6",
			Name:        "Linen Saree",
			Description: "Breathable pure linen saree with minimal design, perfect for summer office wear.",
			Price:       "₹4,299",
			Image:       imageBanarasi,
			Color:       "Beige",
			Material:    "Linen",
			Occasion:    "Office",
			Link:        "#",
		},
		{
			ID:          "7",
			Name:        "Chiffon Embroidered Saree",
			Description: "Elegant chiffon saree with delicate embroidery work and pearl embellishments.",
			Price:       "₹6,799",
			Image:       imageKanjivaram,
			Color:       "Pink",
			Material:    "Chiffon",
			Occasion:    "Reception",
			Link:        "#",
		},
		{
			ID:          "8",
			Name:        "Chanderi Silk Saree",
			Description: "Lightweight Chanderi silk saree with gold border and traditional motifs.",
			Price:       "₹7,999",
			Image:       imageBanarasi,
			Color:       "Teal",
			Material:    "Chanderi Silk",
			Occasion:    "Festival",
			Link:        "#",
		},
		{
			ID:          "9",
			Name:        "Bhagalpuri Silk Saree",
			Description: "Bhagalpuri silk saree with nature-inspired prints and contrast border.",
			Price:       "₹5,499",
			Image:       imageKanjivaram,
			Color:       "Orange",
			Material:    "Bhagalpuri Silk",
			Occasion:    "Puja",
			Link:        "#",
		},
		{
			ID:          "10",
			Name:        "Organza Saree",
			Description: "Sheer organza saree with sequin work and contemporary design for modern look.",
			Price:       "₹8,299",
			Image:       imageBanarasi,
			Color:       "Lavender",
			Material:    "Organza",
			Occasion:    "Party",
			Link:        "#",
		},
	}
}
