package seed

type template struct {
	Name     string
	Category string
	Price    int64
	Image    string
}

var templates = []template{
	{"MacBook Air M3", "Laptops", 114900, "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500&q=60"},
	{"Dell XPS 13 Plus", "Laptops", 159990, "https://images.unsplash.com/photo-1593640408182-31c70c8268f5?w=500&q=60"},
	{"HP Spectre x360", "Laptops", 139999, "https://images.unsplash.com/photo-1544731612-de7f96afe55f?w=500&q=60"},
	{"Lenovo Legion 5 Pro", "Laptops", 129000, "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=500&q=60"},
	{"ASUS ROG Zephyrus G14", "Laptops", 145000, "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500&q=60"},
	{"Acer Predator Helios", "Laptops", 119999, "https://images.unsplash.com/photo-1611186871348-b1ce696e52c9?w=500&q=60"},
	{"MSI Raider GE76", "Laptops", 220000, "https://images.unsplash.com/photo-1588872657578-a83a040b6dc0?w=500&q=60"},
	{"Razer Blade 15", "Laptops", 249999, "https://images.unsplash.com/photo-1525547719571-a2d4ac8945e2?w=500&q=60"},
	{"Samsung Galaxy Book3 Pro", "Laptops", 109990, "https://images.unsplash.com/photo-1531297425163-4d00e12932a3?w=500&q=60"},
	{"Microsoft Surface Laptop 5", "Laptops", 99999, "https://images.unsplash.com/photo-1602081957921-9137a5d6eaee?w=500&q=60"},
	{"HP Pavilion 15", "Laptops", 65000, "https://images.unsplash.com/photo-1560343090-f0409e92791a?w=500&q=60"},
	{"Dell Alienware m15", "Laptops", 185000, "https://images.unsplash.com/photo-1596796929949-c19bbce22009?w=500&q=60"},
	{"LG UltraGear 27\"", "Monitors", 27000, "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=500&q=60"},
	{"Dell UltraSharp 32\"", "Monitors", 65000, "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=500&q=60"},
	{"Samsung Odyssey G9", "Monitors", 115000, "https://images.unsplash.com/photo-1632349142838-89c565d0a64b?w=500&q=60"},
	{"BenQ EW3270U 4K", "Monitors", 32000, "https://images.unsplash.com/photo-1616763355548-1b606f439f86?w=500&q=60"},
	{"ASUS TUF Gaming VG27", "Monitors", 21999, "https://images.unsplash.com/photo-1587302912306-cf1ed9c33146?w=500&q=60"},
	{"MSI Optix MAG241C", "Monitors", 16999, "https://images.unsplash.com/photo-1627384114006-f4b9d7d2d838?w=500&q=60"},
	{"Gigabyte AORUS FO48U", "Monitors", 89000, "https://images.unsplash.com/photo-1593640408182-31c70c8268f5?w=500&q=60"},
	{"Acer Nitro VG240Y", "Monitors", 12500, "https://images.unsplash.com/photo-1542751110-97427bbecf20?w=500&q=60"},
	{"Logitech MX Master 3S", "Accessories", 9995, "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&q=60"},
	{"Razer DeathAdder V3", "Accessories", 6500, "https://images.unsplash.com/photo-1629429408209-1f912961dbd8?w=500&q=60"},
	{"Keychron K2 Mechanical", "Accessories", 7999, "https://images.unsplash.com/photo-1587829741301-dc798b91a603?w=500&q=60"},
	{"HyperX Cloud II", "Accessories", 8500, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=60"},
	{"Sony WH-1000XM5", "Accessories", 29990, "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb?w=500&q=60"},
	{"Corsair K70 RGB", "Accessories", 14000, "https://images.unsplash.com/photo-1595225476474-87563907a212?w=500&q=60"},
	{"Logitech C920 Webcam", "Accessories", 6495, "https://images.unsplash.com/photo-1612815154858-60aa4c59eaa6?w=500&q=60"},
	{"Blue Yeti Microphone", "Accessories", 10999, "https://images.unsplash.com/photo-1588697920150-188981442c58?w=500&q=60"},
	{"Elgato Stream Deck", "Accessories", 13999, "https://images.unsplash.com/photo-1614725350352-8706d863c0dc?w=500&q=60"},
	{"SteelSeries Apex Pro", "Accessories", 18999, "https://images.unsplash.com/photo-1554158804-d57be76cb17c?w=500&q=60"},
	{"NVIDIA RTX 4090", "Components", 155000, "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=500&q=60"},
	{"AMD Ryzen 9 7950X", "Components", 54999, "https://images.unsplash.com/photo-1555616635-640960031050?w=500&q=60"},
	{"Intel Core i9-14900K", "Components", 58999, "https://images.unsplash.com/photo-1555616635-640960031050?w=500&q=60"},
	{"Samsung 990 Pro 2TB", "Components", 18500, "https://images.unsplash.com/photo-1628557672230-ff444cca68c4?w=500&q=60"},
	{"Corsair Vengeance 32GB", "Components", 9500, "https://images.unsplash.com/photo-1562976540-1502c2145186?w=500&q=60"},
	{"ASUS ROG Strix Z790", "Components", 38000, "https://images.unsplash.com/photo-1542393545-facac42e6793?w=500&q=60"},
	{"NZXT H9 Flow Case", "Components", 14500, "https://images.unsplash.com/photo-1587202372634-943afa940bd0?w=500&q=60"},
	{"Noctua NH-D15", "Components", 8500, "https://images.unsplash.com/photo-1584992663964-b873af9c8da6?w=500&q=60"},
	{"Corsair RM850x PSU", "Components", 11500, "https://images.unsplash.com/photo-1618760200889-13824ed2177c?w=500&q=60"},
	{"Lian Li O11 Dynamic", "Components", 13000, "https://images.unsplash.com/photo-1647427847953-29479bbaa1c4?w=500&q=60"},
	{"MSI Gaming Mouse", "Accessories", 2500, "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&q=60"},
	{"Razer Kraken Kit", "Accessories", 5500, "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=60"},
	{"Dell 24\" Monitor SE", "Monitors", 10500, "https://images.unsplash.com/photo-1542751110-97427bbecf20?w=500&q=60"},
	{"Kingston Fury 16GB", "Components", 4500, "https://images.unsplash.com/photo-1562976540-1502c2145186?w=500&q=60"},
	{"WD Blue 1TB SSD", "Components", 6000, "https://images.unsplash.com/photo-1628557672230-ff444cca68c4?w=500&q=60"},
	{"Lenovo Ideapad", "Laptops", 45000, "https://images.unsplash.com/photo-1560343090-f0409e92791a?w=500&q=60"},
	{"Asus Vivobook", "Laptops", 52000, "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500&q=60"},
	{"Logitech G Pro", "Accessories", 9000, "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&q=60"},
	{"Blue Snowball", "Accessories", 4500, "https://images.unsplash.com/photo-1588697920150-188981442c58?w=500&q=60"},
	{"NZXT Kraken Cooler", "Components", 12000, "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=500&q=60"},
}
