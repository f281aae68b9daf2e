package session

// Static translation table. Keys are shared across languages; a language
// missing a key falls back to the key itself at translate time.
var translations = map[string]map[string]string{
	"en": {
		"nav.home":          "Home",
		"nav.shops":         "Shops",
		"nav.products":      "Products",
		"nav.cart":          "Cart",
		"nav.orders":        "Orders",
		"nav.dashboard":     "Dashboard",
		"cart.empty":        "Your cart is empty",
		"cart.add":          "Add to cart",
		"cart.remove":       "Remove",
		"cart.checkout":     "Checkout",
		"cart.total":        "Total",
		"shop.verified":     "Verified",
		"shop.halal":        "Halal certified",
		"shop.nearby":       "Nearby shops",
		"location.enable":   "Enable location",
		"location.disabled": "Location is disabled",
		"checkout.success":  "Order placed successfully",
	},
	"ar": {
		"nav.home":          "الرئيسية",
		"nav.shops":         "المتاجر",
		"nav.products":      "المنتجات",
		"nav.cart":          "السلة",
		"nav.orders":        "الطلبات",
		"nav.dashboard":     "لوحة التحكم",
		"cart.empty":        "سلتك فارغة",
		"cart.add":          "أضف إلى السلة",
		"cart.remove":       "إزالة",
		"cart.checkout":     "إتمام الطلب",
		"cart.total":        "المجموع",
		"shop.verified":     "موثق",
		"shop.halal":        "حلال معتمد",
		"shop.nearby":       "المتاجر القريبة",
		"location.enable":   "تفعيل الموقع",
		"location.disabled": "الموقع معطل",
		"checkout.success":  "تم تقديم الطلب بنجاح",
	},
	"ur": {
		"nav.home":      "ہوم",
		"nav.shops":     "دکانیں",
		"nav.products":  "مصنوعات",
		"nav.cart":      "ٹوکری",
		"nav.orders":    "آرڈرز",
		"cart.empty":    "آپ کی ٹوکری خالی ہے",
		"cart.add":      "ٹوکری میں شامل کریں",
		"cart.remove":   "ہٹائیں",
		"cart.checkout": "چیک آؤٹ",
		"cart.total":    "کل",
		"shop.verified": "تصدیق شدہ",
		"shop.halal":    "حلال مصدقہ",
	},
}
