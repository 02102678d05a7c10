package model

// Currency is a reference-list entry used for selection and display only;
// no conversion happens anywhere in the app.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// Currencies is the static list offered during onboarding.
var Currencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$"},
	{Code: "PEN", Name: "Peruvian Nuevo Sol", Symbol: "S/"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "Mex$"},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	{Code: "ARS", Name: "Argentine Peso", Symbol: "AR$"},
	{Code: "CLP", Name: "Chilean Peso", Symbol: "CLP$"},
	{Code: "COP", Name: "Colombian Peso", Symbol: "COL$"},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "TWD", Name: "Taiwan Dollar", Symbol: "NT$"},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿"},
	{Code: "VND", Name: "Vietnamese Dong", Symbol: "₫"},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱"},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp"},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM"},
	{Code: "SAR", Name: "Saudi Riyal", Symbol: "﷼"},
	{Code: "AED", Name: "UAE Dirham", Symbol: "د.إ"},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
	{Code: "ZAR", Name: "South African Rand", Symbol: "R"},
	{Code: "RUB", Name: "Russian Ruble", Symbol: "₽"},
	{Code: "PLN", Name: "Polish Złoty", Symbol: "zł"},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr"},
	{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr"},
	{Code: "DKK", Name: "Danish Krone", Symbol: "kr"},
	{Code: "ILS", Name: "Israeli Shekel", Symbol: "₪"},
	{Code: "EGP", Name: "Egyptian Pound", Symbol: "E£"},
	{Code: "UYU", Name: "Uruguayan Peso", Symbol: "$U"},
	{Code: "BOB", Name: "Bolivian Boliviano", Symbol: "Bs"},
	{Code: "PYG", Name: "Paraguayan Guarani", Symbol: "₲"},
	{Code: "VES", Name: "Venezuelan Bolívar", Symbol: "Bs."},
}

// CurrencyByCode looks up a currency in the reference list.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
