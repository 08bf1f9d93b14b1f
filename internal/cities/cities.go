// Package cities carries the fixed table of supported French cities.
package cities

import "strings"

type City struct {
	Name string
	Lat  float64
	Lon  float64
}

// The datasets are collected for these five cities; the table also
// backs search-text city detection and map centering.
var table = []City{
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522},
	{Name: "Lyon", Lat: 45.764, Lon: 4.8357},
	{Name: "Marseille", Lat: 43.2965, Lon: 5.3698},
	{Name: "Toulouse", Lat: 43.6047, Lon: 1.4442},
	{Name: "Nice", Lat: 43.7102, Lon: 7.262},
}

// Lookup finds a known city by name, case-insensitively.
func Lookup(name string) (City, bool) {
	name = strings.TrimSpace(name)
	for _, c := range table {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return City{}, false
}

func Names() []string {
	out := make([]string, len(table))
	for i, c := range table {
		out[i] = c.Name
	}
	return out
}
