package catalog

// defaultPool is the static demo catalogue. Image references point at the
// asset pipeline's placeholder set.
var defaultPool = []Product{
	{ID: "101", Title: "Montre Connectée Pro", Price: 45000, Discount: 20, Category: "Tech", Image: "/images/tech/smartwatch.jpg", SellerID: "s1"},
	{ID: "102", Title: "Sneakers Sport Run", Price: 35000, Discount: 15, Category: "Mode", Image: "/images/mode/sneakers.jpg", SellerID: "s2"},
	{ID: "103", Title: "Casque Audio BT", Price: 25000, Discount: 10, Category: "Tech", Image: "/images/tech/headphones.jpg", SellerID: "s3"},
	{ID: "104", Title: "Sac à dos Urbain", Price: 40000, Discount: 25, Category: "Mode", Image: "/images/mode/bag.jpg", SellerID: "s4"},
	{ID: "105", Title: "Tablette Graphique", Price: 150000, Discount: 5, Category: "Tech", Image: "/images/tech/tablet.jpg", SellerID: "s5"},
	{ID: "201", Title: "Nike Air Max", Price: 120000, Category: "Mode", Image: "/images/mode/nike.jpg", SellerID: "s5"},
	{ID: "202", Title: "Canapé Cuir", Price: 450000, Category: "Maison", Image: "/images/maison/sofa.jpg", SellerID: "s6"},
	{ID: "203", Title: "Manette PS5", Price: 75000, Category: "Loisirs", Image: "/images/tech/ps5.jpg", SellerID: "s7"},
	{ID: "204", Title: "MacBook Air", Price: 2500000, Category: "Tech", Image: "/images/tech/laptop.jpg", SellerID: "s8"},
	{ID: "205", Title: "Vase Artisanal", Price: 25000, Category: "Maison", Image: "/images/maison/vase.jpg", SellerID: "s9"},
	{ID: "206", Title: "Lunettes Soleil", Price: 20000, Category: "Mode", Image: "/images/mode/glasses.jpg", SellerID: "s6"},
	{ID: "207", Title: "T-Shirt Cotton", Price: 15000, Category: "Mode", Image: "/images/mode/tshirt.jpg", SellerID: "s1"},
	{ID: "208", Title: "Jean Denim", Price: 45000, Category: "Mode", Image: "/images/mode/jeans.jpg", SellerID: "s2"},
	{ID: "304", Title: "Moto KTM 390", Price: 2500000, IsNew: true, Category: "Véhicules", Image: "/images/vehicules/moto.jpg", SellerID: "s10"},
	{ID: "305", Title: "Table Basse", Price: 65000, Category: "Maison", Image: "/images/maison/table.jpg", SellerID: "s11"},
}
