package config

/* =========================
   CAR CATALOG
========================= */

// CarSpec is a purchasable car as it appears in the dealership catalog.
// Stats are the factory baseline; upgrades and fuel live on the player's copy.
type CarSpec struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Power        int    `json:"power"`
	Speed        int    `json:"speed"`
	Handling     int    `json:"handling"`
	Acceleration int    `json:"acceleration"`
	Price        int    `json:"price"`
}

// CarCatalog lists every purchasable car. Index 0 is the starter car every
// new account receives for free.
var CarCatalog = []CarSpec{
	{ID: 0, Name: "Handa Civic", Power: 50, Speed: 60, Handling: 70, Acceleration: 55, Price: 0},
	{ID: 1, Name: "Toyoda Corolo", Power: 55, Speed: 65, Handling: 62, Acceleration: 58, Price: 4500},
	{ID: 2, Name: "Mazta MX-5", Power: 68, Speed: 74, Handling: 82, Acceleration: 70, Price: 8000},
	{ID: 3, Name: "Nissen Silva", Power: 80, Speed: 85, Handling: 75, Acceleration: 78, Price: 14000},
	{ID: 4, Name: "Subareu Impresta", Power: 90, Speed: 94, Handling: 86, Acceleration: 88, Price: 28000},
	{ID: 5, Name: "Mitsubushi Evol X", Power: 100, Speed: 105, Handling: 96, Acceleration: 98, Price: 45000},
	{ID: 6, Name: "Fard Mustung GT", Power: 122, Speed: 112, Handling: 88, Acceleration: 108, Price: 75000},
	{ID: 7, Name: "Nissen Skyliner GT-R", Power: 132, Speed: 136, Handling: 118, Acceleration: 126, Price: 120000},
	{ID: 8, Name: "Lamborjini Avenger", Power: 160, Speed: 170, Handling: 140, Acceleration: 155, Price: 250000},
	{ID: 9, Name: "Bugati Vision", Power: 182, Speed: 192, Handling: 158, Acceleration: 176, Price: 400000},
}

// FindCarSpec returns the catalog entry with the given ID, or nil.
func FindCarSpec(id int) *CarSpec {
	for i := range CarCatalog {
		if CarCatalog[i].ID == id {
			return &CarCatalog[i]
		}
	}
	return nil
}
