// Package fixtures holds the data set the app is served from. It is built
// once at process start and never mutated; accessors hand out copies.
package fixtures

import (
	"slices"
	"time"

	"neighborhood-share/internal/model"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("fixtures: bad timestamp " + s)
	}
	return t
}

var listings = []model.Listing{
	{
		ID:              "1",
		Title:           "Photography Session",
		Category:        "Skills",
		Owner:           "Alex Rivera",
		Rating:          4.9,
		Distance:        "0.3 miles",
		Image:           "https://images.pexels.com/photos/1264210/pexels-photo-1264210.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.8,
		IsAvailable:     true,
		Price:           "$50/hour",
		Description:     "Professional portrait and event photography",
		FullDescription: "Professional photographer with 8+ years of experience specializing in portraits, family photos, and special events. I use high-end equipment and provide edited digital photos within 48 hours. Perfect for headshots, family portraits, graduation photos, or small events. All sessions include a consultation to discuss your vision and preferred style.",
		CreatedAt:       ts("2024-01-15T10:30:00Z"),
		IsFeatured:      true,
		RelatedItems:    []string{"2", "4"},
	},
	{
		ID:              "2",
		Title:           "Guitar Lessons for Beginners",
		Category:        "Skills",
		Owner:           "Emma Wilson",
		Rating:          5.0,
		Distance:        "0.4 miles",
		Image:           "https://images.pexels.com/photos/1407322/pexels-photo-1407322.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.9,
		IsAvailable:     true,
		Price:           "$25/hour",
		Description:     "Learn guitar from a certified instructor",
		FullDescription: "Professional guitar lessons for beginners and intermediate players. I have 10+ years of teaching experience and can help you learn acoustic or electric guitar. Lessons include music theory, chord progressions, and your favorite songs. All skill levels welcome!",
		CreatedAt:       ts("2024-01-16T14:20:00Z"),
		IsNew:           true,
		RelatedItems:    []string{"3"},
	},
	{
		ID:              "3",
		Title:           "Homemade Italian Lasagna",
		Category:        "Meals",
		Owner:           "Tony Martinez",
		Rating:          4.8,
		Distance:        "0.1 miles",
		Image:           "https://images.pexels.com/photos/4518843/pexels-photo-4518843.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.6,
		IsAvailable:     true,
		Price:           "$15",
		Description:     "Fresh homemade lasagna with family recipe",
		FullDescription: "Authentic Italian lasagna made with my grandmother's secret recipe. Features layers of fresh pasta, homemade meat sauce, ricotta, mozzarella, and parmesan cheese. Serves 6-8 people. Made fresh daily with organic ingredients from local farmers market.",
		CreatedAt:       ts("2024-01-16T16:45:00Z"),
		IsNew:           true,
		IsFeatured:      true,
		RelatedItems:    []string{"4", "5"},
	},
	{
		ID:              "4",
		Title:           "Airport Ride Service",
		Category:        "Transportation",
		Owner:           "Jessica Lee",
		Rating:          4.7,
		Distance:        "0.3 miles",
		Image:           "https://images.pexels.com/photos/1048040/pexels-photo-1048040.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.8,
		IsAvailable:     false,
		Price:           "$30",
		Description:     "Reliable airport transportation",
		FullDescription: "Safe and reliable transportation to and from the airport. Clean, comfortable vehicle with space for luggage. Available 24/7 with advance booking. Licensed and insured driver with 5+ years experience. Can accommodate up to 4 passengers.",
		CreatedAt:       ts("2024-01-14T09:15:00Z"),
		RelatedItems:    []string{"1", "2"},
	},
	{
		ID:              "5",
		Title:           "Fresh Baked Sourdough Bread",
		Category:        "Meals",
		Owner:           "Maria Garcia",
		Rating:          4.9,
		Distance:        "0.5 miles",
		Image:           "https://images.pexels.com/photos/1775043/pexels-photo-1775043.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.8,
		IsAvailable:     true,
		Price:           "$8",
		Description:     "Artisan sourdough bread baked daily",
		FullDescription: "Handcrafted sourdough bread made with natural starter that's been maintained for over 5 years. Baked fresh every morning using organic flour and traditional techniques. Crispy crust, soft interior, perfect for sandwiches or toast. Available in whole wheat and classic varieties.",
		CreatedAt:       ts("2024-01-16T18:30:00Z"),
		IsNew:           true,
		RelatedItems:    []string{"3"},
	},
	{
		ID:              "6",
		Title:           "Garden Design Consultation",
		Category:        "Skills",
		Owner:           "David Kim",
		Rating:          4.6,
		Distance:        "0.6 miles",
		Image:           "https://images.pexels.com/photos/1301856/pexels-photo-1301856.jpeg?auto=compress&cs=tinysrgb&w=800",
		TrustScore:      4.5,
		IsAvailable:     true,
		Price:           "$40/hour",
		Description:     "Professional landscape and garden design",
		FullDescription: "Certified landscape designer with 12+ years of experience creating beautiful, sustainable gardens. I specialize in native plant gardens, vegetable gardens, and drought-resistant landscaping. Consultation includes site analysis, design recommendations, and plant selection guidance. Perfect for homeowners looking to transform their outdoor space.",
		CreatedAt:       ts("2024-01-15T12:00:00Z"),
		RelatedItems:    []string{"1"},
	},
}

// Listings returns a copy of the catalog fixture in its declared order.
func Listings() []model.Listing {
	out := slices.Clone(listings)
	for i := range out {
		out[i].RelatedItems = slices.Clone(out[i].RelatedItems)
	}
	return out
}

// HomeChips are the category selectors offered on the home feed.
func HomeChips() []string {
	return []string{
		model.SelectorAll, model.SelectorFeatured, model.SelectorNew,
		"Tools", "Skills", "Meals", "Transportation",
	}
}

// Categories returns the closed set of resource categories.
func Categories() []model.Category {
	return []model.Category{
		{ID: model.CategoryTools, Name: "Tools", Icon: "🔧"},
		{ID: model.CategorySkills, Name: "Skills", Icon: "🎓"},
		{ID: model.CategoryMeals, Name: "Meals", Icon: "🍽️"},
		{ID: model.CategoryTransportation, Name: "Transportation", Icon: "🚗"},
		{ID: model.CategoryAccommodation, Name: "Accommodation", Icon: "🏠"},
		{ID: model.CategoryServices, Name: "Services", Icon: "💼"},
	}
}

// AvailabilityOptions are the choices offered by the share form.
func AvailabilityOptions() []string {
	return []string{
		"Available Now",
		"Available Today",
		"Available This Week",
		"Available by Appointment",
		"Flexible Schedule",
	}
}

// CurrentUser is the neighbor the session acts as.
func CurrentUser() model.UserSummary {
	return model.UserSummary{
		Name:         "Sarah Johnson",
		Neighborhood: "Oak Grove",
		TrustScore:   4.8,
		Points:       1250,
		Level:        "Trusted Neighbor",
	}
}
