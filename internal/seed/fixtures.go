// Package seed loads the demo bar menu: cocktails, beers, wines, soft drinks
// and mocktails with their ingredients.
package seed

import "github.com/rpattn/barmenu/internal/domain"

type categoryFixture struct {
	Name        string
	Slug        string
	Description string
	SortOrder   int
}

type ingredientFixture struct {
	Name        string
	Slug        string
	Description string
}

type componentFixture struct {
	Slug string
	Type domain.IngredientType
}

type productFixture struct {
	Category     string
	Name         string
	Slug         string
	Description  string
	PriceInCents int64
	SortOrder    int
	Ingredients  []componentFixture
}

// Menu is the complete demo data set.
type Menu struct {
	Categories  []categoryFixture
	Ingredients []ingredientFixture
	Products    []productFixture
}

func base(slug string) componentFixture     { return componentFixture{Slug: slug, Type: domain.IngredientTypeBase} }
func optional(slug string) componentFixture { return componentFixture{Slug: slug, Type: domain.IngredientTypeOptional} }

// DemoMenu returns the seeded menu.
func DemoMenu() Menu {
	return Menu{
		Categories: []categoryFixture{
			{"Cocktails", "cocktails", "Mixed drinks built on a spirit base with juices, syrups or bitters.", 10},
			{"Beers", "beers", "Lagers, ales and stouts brewed from malt, hops and yeast.", 20},
			{"Wines", "wines", "Red, white and sparkling wines by the glass.", 30},
			{"Soft Drinks", "soft-drinks", "Sodas and juices without alcohol.", 40},
			{"Mocktails", "mocktails", "Alcohol-free takes on classic cocktails.", 50},
		},
		Ingredients: []ingredientFixture{
			{"Vodka", "vodka", "Neutral grain spirit"},
			{"Gin", "gin", "Juniper-flavoured spirit"},
			{"Rum", "rum", "Spirit distilled from sugarcane"},
			{"Whiskey", "whiskey", "Spirit distilled from fermented grain mash"},
			{"Tequila", "tequila", "Agave spirit from Mexico"},
			{"Bourbon", "bourbon", "American corn whiskey"},
			{"Scotch", "scotch", "Malt whisky from Scotland"},
			{"Brandy", "brandy", "Spirit distilled from wine"},
			{"Triple Sec", "triple-sec", "Orange liqueur"},
			{"Vermouth", "vermouth", "Aromatised fortified wine"},
			{"Lime Juice", "lime-juice", "Freshly squeezed lime juice"},
			{"Lemon Juice", "lemon-juice", "Freshly squeezed lemon juice"},
			{"Orange Juice", "orange-juice", "Freshly squeezed orange juice"},
			{"Cranberry Juice", "cranberry-juice", "Tart cranberry juice"},
			{"Pineapple Juice", "pineapple-juice", "Sweet pineapple juice"},
			{"Grapefruit Juice", "grapefruit-juice", "Bitter grapefruit juice"},
			{"Simple Syrup", "simple-syrup", "Sugar dissolved in water"},
			{"Grenadine", "grenadine", "Pomegranate syrup"},
			{"Angostura Bitters", "angostura-bitters", "Aromatic bitters"},
			{"Soda Water", "soda-water", "Carbonated water"},
			{"Tonic Water", "tonic-water", "Carbonated water with quinine"},
			{"Cola", "cola", "Cola soft drink"},
			{"Ginger Beer", "ginger-beer", "Spicy ginger soda"},
			{"Mint Leaves", "mint-leaves", "Fresh mint"},
			{"Olive", "olive", "Green olive garnish"},
			{"Lime Wedge", "lime-wedge", "Lime garnish"},
			{"Lemon Wedge", "lemon-wedge", "Lemon garnish"},
			{"Orange Slice", "orange-slice", "Orange garnish"},
			{"Cherry", "cherry", "Maraschino cherry"},
		},
		Products: []productFixture{
			{"cocktails", "Mojito", "mojito", "Refreshing Cuban cocktail with rum, lime, mint, and soda", 1200, 10,
				[]componentFixture{base("rum"), base("lime-juice"), base("simple-syrup"), base("mint-leaves"), base("soda-water")}},
			{"cocktails", "Margarita", "margarita", "Classic tequila cocktail with lime and triple sec", 1100, 20,
				[]componentFixture{base("tequila"), base("triple-sec"), base("lime-juice"), optional("lime-wedge")}},
			{"cocktails", "Martini", "martini", "Sophisticated gin and vermouth cocktail", 1400, 30,
				[]componentFixture{base("gin"), base("vermouth"), optional("olive")}},
			{"cocktails", "Old Fashioned", "old-fashioned", "Classic whiskey cocktail with bitters and sugar", 1300, 40,
				[]componentFixture{base("bourbon"), base("simple-syrup"), base("angostura-bitters"), optional("orange-slice"), optional("cherry")}},
			{"beers", "Heineken", "heineken", "Premium lager beer from the Netherlands", 800, 10, nil},
			{"beers", "Corona Extra", "corona-extra", "Mexican lager with lime", 900, 20,
				[]componentFixture{optional("lime-wedge")}},
			{"beers", "Guinness", "guinness", "Irish dry stout with creamy head", 1000, 30, nil},
			{"wines", "House Red Wine", "house-red-wine", "Premium house red wine selection", 1200, 10, nil},
			{"wines", "House White Wine", "house-white-wine", "Premium house white wine selection", 1200, 20, nil},
			{"wines", "Champagne", "champagne", "French sparkling wine", 1800, 30, nil},
			{"soft-drinks", "Coca Cola", "coca-cola", "Classic cola beverage", 400, 10, nil},
			{"soft-drinks", "Sprite", "sprite", "Lemon-lime flavored soft drink", 400, 20, nil},
			{"soft-drinks", "Orange Juice", "orange-juice", "Fresh squeezed orange juice", 600, 30, nil},
			{"mocktails", "Virgin Mojito", "virgin-mojito", "Non-alcoholic version of the classic mojito", 800, 10,
				[]componentFixture{base("lime-juice"), base("simple-syrup"), base("mint-leaves"), base("soda-water")}},
			{"mocktails", "Shirley Temple", "shirley-temple", "Ginger ale with grenadine and cherry garnish", 700, 20,
				[]componentFixture{base("ginger-beer"), base("grenadine"), optional("cherry")}},
		},
	}
}
