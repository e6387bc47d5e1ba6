package boleto

// banks maps FEBRABAN 3-digit bank codes to display names.
// The table is intentionally non-exhaustive; unknown codes resolve to
// UnknownBank so a miss is never an error.
var banks = map[string]string{
	"001": "Banco do Brasil",
	"007": "BNDES",
	"033": "Santander",
	"069": "Crefisa",
	"077": "Banco Inter",
	"102": "XP Investimentos",
	"104": "Caixa Econômica Federal",
	"140": "Easynvest",
	"197": "Stone",
	"208": "BTG Pactual",
	"212": "Banco Original",
	"237": "Bradesco",
	"260": "Nu Pagamentos",
	"341": "Itaú",
	"389": "Banco Mercantil do Brasil",
	"422": "Banco Safra",
	"505": "Credit Suisse",
	"633": "Banco Rendimento",
	"652": "Itaú Unibanco",
	"735": "Banco Neon",
	"739": "Banco Cetelem",
	"745": "Citibank",
}

// UnknownBank is returned when a bank code is not in the directory.
const UnknownBank = "Unknown"

// BankName resolves a 3-digit bank code to its display name.
func BankName(code string) string {
	if name, ok := banks[code]; ok {
		return name
	}
	return UnknownBank
}
