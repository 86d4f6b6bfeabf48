// Package catalog lists the banks and card products offered by the add flow.
package catalog

import "strings"

type Bank struct {
	Code      string
	Name      string
	CardTypes []string
}

var banks = []Bank{
	{Code: "bbva", Name: "BBVA", CardTypes: []string{
		"Azul", "Oro", "Platinum", "Vive", "Start", "Crea", "Primera",
		"Educación", "IPN", "UNAM", "Rayados",
	}},
	{Code: "banamex", Name: "Banamex", CardTypes: []string{
		"Clásica", "Oro", "Platinum", "Lineup", "Costco", "Home Depot", "Teletón",
		"Joy", "Affinity", "Beyond", "Comer", "Conquista", "Descubre", "Explora",
	}},
	{Code: "santander", Name: "Santander", CardTypes: []string{
		"LikeU", "Gold", "Platinum", "World Elite", "Amex",
		"Fiesta Oro", "Fiesta Platino",
		"Aeroméxico BCA", "Aeroméxico Platino", "Aeroméxico Infinite",
	}},
	{Code: "banorte", Name: "Banorte", CardTypes: []string{"Clásica", "Oro"}},
	{Code: "banregio", Name: "Banregio", CardTypes: []string{"Oro", "Platino"}},
	{Code: "azteca", Name: "Banco Azteca", CardTypes: []string{"Clásica", "Oro"}},
	{Code: "vexi", Name: "Vexi", CardTypes: []string{"Carnet", "American Express"}},
	{Code: "nu", Name: "Nu", CardTypes: []string{"Clásica"}},
	{Code: "hey", Name: "Hey Banco", CardTypes: []string{"Clásica"}},
	{Code: "rappi", Name: "Rappi", CardTypes: []string{"Clásica"}},
	{Code: "didi", Name: "DiDi", CardTypes: []string{"Clásica"}},
	{Code: "plata", Name: "Plata", CardTypes: []string{"Clásica"}},
	{Code: "mercadolibre", Name: "Mercado Libre", CardTypes: []string{"Clásica"}},
	{Code: "invex", Name: "invex", CardTypes: []string{
		"despegargold", "despegarplat", "ikea", "sams", "volaris", "volaris0",
		"volaris2", "voyage", "voyageplat", "walmart",
	}},
}

// Banks returns a copy of the catalog in display order.
func Banks() []Bank {
	out := make([]Bank, len(banks))
	copy(out, banks)
	return out
}

// Find looks a bank up by code or by name, ignoring case.
func Find(s string) (Bank, bool) {
	s = strings.TrimSpace(s)
	for _, b := range banks {
		if strings.EqualFold(b.Code, s) || strings.EqualFold(b.Name, s) {
			return b, true
		}
	}
	return Bank{}, false
}
