// Package catalog holds the bundled product and category fixtures.
//
// The fixtures are the storefront's default content and the fallback
// whenever the remote catalog API is unset or unreachable. All lookups are
// pure and return copies; nothing here can fail.
package catalog

import (
	"fmt"
	"strings"

	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/app/sku"
)

const (
	creator        = "NINA"
	collectionCode = "DIC25"
	idPrefix       = "origins-"
)

type seed struct {
	name        string
	description string
	materials   []string
	techniques  []string
	tags        []string
	image       string
	alt         string
}

var seeds = map[models.ProductCategory][]seed{
	models.Bracelets: {
		{
			name:        "Pearl Embrace Bracelet",
			description: "Elegant wire-wrapped bracelet featuring freshwater pearls and bronze wire with 18k gold plating.",
			materials:   []string{"Freshwater Pearls", "Bronze AAA Wire", "18k Gold Plating"},
			techniques:  []string{"Wire Wrapping", "Alambrismo"},
			tags:        []string{"Unique Piece", "Handmade", "Premium"},
			image:       "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800&q=80",
			alt:         "Handmade wire-wrapped bracelet with freshwater pearls",
		},
		{
			name:        "Tiger Eye Protection",
			description: "Bold bracelet combining tiger eye stones with intricate wire weaving on stainless steel base.",
			materials:   []string{"Tiger Eye", "Stainless Steel", "Czech Crystals"},
			techniques:  []string{"Wire Wrapping", "Stone Setting"},
			tags:        []string{"Unique Piece", "Handmade", "Natural Stones"},
			image:       "https://images.unsplash.com/photo-1573408301185-9146fe634ad0?w=800&q=80",
			alt:         "Tiger eye stone bracelet with wire wrapping",
		},
		{
			name:        "Volcanic Energy Band",
			description: "Minimalist design featuring volcanic stone beads wrapped with bronze wire.",
			materials:   []string{"Volcanic Stone", "Bronze Wire", "Indonesian Beads"},
			techniques:  []string{"Wire Wrapping", "Bead Integration"},
			tags:        []string{"Unique Piece", "Handmade", "Minimalist"},
			image:       "https://images.unsplash.com/photo-1590065761959-1e357c50eee0?w=800&q=80",
			alt:         "Volcanic stone bracelet with bronze wire",
		},
	},
	models.Necklaces: {
		{
			name:        "Ocean Pearl Cascade",
			description: "Stunning necklace showcasing mother-of-pearl and freshwater pearls in an elegant wire-wrapped design.",
			materials:   []string{"Mother-of-Pearl", "Freshwater Pearls", "18k Gold Plating", "Bronze Wire"},
			techniques:  []string{"Wire Wrapping", "Multi-layer Design"},
			tags:        []string{"Unique Piece", "Handmade", "Statement Piece"},
			image:       "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=800&q=80",
			alt:         "Mother-of-pearl necklace with wire wrapping",
		},
		{
			name:        "Agate Harmony",
			description: "Natural agate centerpiece surrounded by delicate wire work and zirconia accents.",
			materials:   []string{"Agate", "Zirconia", "Stainless Steel", "Czech Crystals"},
			techniques:  []string{"Wire Wrapping", "Stone Framing"},
			tags:        []string{"Unique Piece", "Handmade", "Natural Beauty"},
			image:       "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?w=800&q=80",
			alt:         "Agate stone necklace with wire frame",
		},
		{
			name:        "Jade Serenity",
			description: "Elegant jade pendant wrapped in intricate wire patterns with gold accents.",
			materials:   []string{"Jade", "Bronze Wire", "18k Gold Plating", "Quartz"},
			techniques:  []string{"Wire Wrapping", "Alambrismo"},
			tags:        []string{"Unique Piece", "Handmade", "Premium"},
			image:       "https://images.unsplash.com/photo-1506630448388-4e683c67ddb0?w=800&q=80",
			alt:         "Jade pendant with intricate wire wrapping",
		},
	},
	models.Rings: {
		{
			name:        "Garnet Wire Crown",
			description: "Exquisite ring featuring a vibrant garnet stone set in an ornate wire crown design.",
			materials:   []string{"Garnet", "Bronze AAA Wire", "18k Gold Plating"},
			techniques:  []string{"Wire Wrapping", "Crown Setting"},
			tags:        []string{"Unique Piece", "Handmade", "Elegant"},
			image:       "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800&q=80",
			alt:         "Garnet ring with wire crown setting",
		},
		{
			name:        "Crystal Spiral Ring",
			description: "Modern design featuring Czech crystals wrapped in a mesmerizing spiral pattern.",
			materials:   []string{"Czech Crystals", "Stainless Steel", "Silver Wire"},
			techniques:  []string{"Wire Wrapping", "Spiral Technique"},
			tags:        []string{"Unique Piece", "Handmade", "Contemporary"},
			image:       "https://images.unsplash.com/photo-1603561596112-0a132b757442?w=800&q=80",
			alt:         "Crystal ring with spiral wire design",
		},
		{
			name:        "Pearl Elegance Band",
			description: "Delicate ring with freshwater pearl centerpiece and fine wire detailing.",
			materials:   []string{"Freshwater Pearl", "Bronze Wire", "18k Gold Plating"},
			techniques:  []string{"Wire Wrapping", "Pearl Setting"},
			tags:        []string{"Unique Piece", "Handmade", "Feminine"},
			image:       "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800&q=80",
			alt:         "Pearl ring with delicate wire work",
		},
	},
	models.Earrings: {
		{
			name:        "Quartz Cascade Earrings",
			description: "Elegant drop earrings featuring clear quartz wrapped in flowing wire patterns.",
			materials:   []string{"Quartz", "Bronze Wire", "18k Gold Plating", "Indonesian Beads"},
			techniques:  []string{"Wire Wrapping", "Drop Design"},
			tags:        []string{"Unique Piece", "Handmade", "Statement"},
			image:       "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=800&q=80",
			alt:         "Quartz drop earrings with wire wrapping",
		},
		{
			name:        "Mother-of-Pearl Drops",
			description: "Sophisticated earrings combining iridescent mother-of-pearl with intricate wire work.",
			materials:   []string{"Mother-of-Pearl", "Stainless Steel", "Zirconia"},
			techniques:  []string{"Wire Wrapping", "Layered Design"},
			tags:        []string{"Unique Piece", "Handmade", "Elegant"},
			image:       "https://images.unsplash.com/photo-1596944946407-bce7e6a144f3?w=800&q=80",
			alt:         "Mother-of-pearl earrings with wire details",
		},
		{
			name:        "Czech Crystal Hoops",
			description: "Modern hoop earrings adorned with sparkling Czech crystals and fine wire weaving.",
			materials:   []string{"Czech Crystals", "Bronze AAA Wire", "18k Gold Plating"},
			techniques:  []string{"Wire Wrapping", "Hoop Design"},
			tags:        []string{"Unique Piece", "Handmade", "Versatile"},
			image:       "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=800&q=80",
			alt:         "Crystal hoop earrings with wire wrapping",
		},
	},
}

var categories = []models.Category{
	{
		Slug:        models.Bracelets,
		Name:        "Bracelets",
		Description: "Handcrafted wire-wrapped bracelets featuring premium stones and materials",
		Image: models.Image{
			Src: "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=800&q=80",
			Alt: "Collection of handmade bracelets",
		},
	},
	{
		Slug:        models.Necklaces,
		Name:        "Necklaces",
		Description: "Unique statement pieces crafted with fine wire-wrapping techniques",
		Image: models.Image{
			Src: "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=800&q=80",
			Alt: "Collection of handmade necklaces",
		},
	},
	{
		Slug:        models.Rings,
		Name:        "Rings",
		Description: "Elegant rings featuring natural stones in intricate wire designs",
		Image: models.Image{
			Src: "https://images.unsplash.com/photo-1605100804763-247f67b3557e?w=800&q=80",
			Alt: "Collection of handmade rings",
		},
	},
	{
		Slug:        models.Earrings,
		Name:        "Earrings",
		Description: "Sophisticated earrings combining artisan craftsmanship with premium materials",
		Image: models.Image{
			Src: "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=800&q=80",
			Alt: "Collection of handmade earrings",
		},
	},
}

var products = build()

// build expands the seeds in category order, numbering each piece within its
// category and deriving id and SKU from the same sequence.
func build() []models.Product {
	var out []models.Product
	for _, cat := range models.AllCategories {
		code, _ := sku.CategoryCode(cat)
		for _, s := range seeds[cat] {
			seq := sku.NextSequenceNumber(out, cat)
			out = append(out, models.Product{
				ID: fmt.Sprintf("%s%s-%03d", idPrefix, strings.ToLower(code), seq),
				SKU: sku.MustGenerate(sku.Options{
					Creator:        creator,
					CollectionDate: collectionCode,
					Category:       cat,
					SequenceNumber: seq,
				}),
				Name:             s.name,
				Category:         cat,
				ShortDescription: s.description,
				Materials:        s.materials,
				Techniques:       s.techniques,
				Tags:             s.tags,
				Image:            models.Image{Src: s.image, Alt: s.alt},
			})
		}
	}
	return out
}
