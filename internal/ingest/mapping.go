package ingest

import "github.com/JeromeFabre77/SpotWork/internal/core/model"

// fieldRule maps one normalized attribute to raw property names in
// fallback order; the first non-empty property wins.
type fieldRule struct {
	attr string
	from []string
}

// addressRule assembles "street, postcode city" when all three raw
// parts are present (library open-data layout).
type addressRule struct {
	street, postcode, city string
}

// Mapping is the declarative ingestion spec for one category dataset.
type Mapping struct {
	Category model.Category
	rules    []fieldRule
	address  *addressRule
}

// osmRules covers the OSM tag vocabulary shared by the Overpass-built
// datasets (coworking spaces and cafés).
var osmRules = []fieldRule{
	{attr: model.AttrName, from: []string{"name"}},
	{attr: model.AttrCity, from: []string{"commune", "city"}},
	{attr: model.AttrContactCity, from: []string{"contact:city"}},
	{attr: model.AttrAddrCity, from: []string{"addr:city"}},
	{attr: model.AttrAddress, from: []string{"addr:full", "addr:street"}},
	{attr: model.AttrHours, from: []string{"opening_hours"}},
	{attr: model.AttrPhone, from: []string{"phone", "contact:phone"}},
	{attr: model.AttrEmail, from: []string{"email", "contact:email"}},
	{attr: model.AttrWebsite, from: []string{"website", "contact:website"}},
	{attr: model.AttrDescription, from: []string{"description"}},
	{attr: model.AttrWifi, from: []string{"hasWifi", "wifi"}},
	{attr: model.AttrInternetAccess, from: []string{"internet_access"}},
	{attr: model.AttrWifiFee, from: []string{"internet_access:fee"}},
	{attr: model.AttrWheelchair, from: []string{"wheelchair"}},
	{attr: model.AttrAirCon, from: []string{"air_conditioning"}},
	{attr: model.AttrIndoorSeating, from: []string{"indoor_seating"}},
	{attr: model.AttrOutdoorSeating, from: []string{"outdoor_seating"}},
	{attr: model.AttrOperatorType, from: []string{"operator:type", "operator"}},
	{attr: model.AttrSmoking, from: []string{"smoking"}},
	{attr: model.AttrClosed, from: []string{"closed"}},
}

func CoworkingMapping() Mapping {
	return Mapping{Category: model.Coworking, rules: osmRules}
}

func CafeMapping() Mapping {
	return Mapping{Category: model.Cafe, rules: osmRules}
}

// LibraryMapping follows the Île-de-France library registry export.
func LibraryMapping() Mapping {
	return Mapping{
		Category: model.Library,
		rules: []fieldRule{
			{attr: model.AttrName, from: []string{"nometablissement", "name"}},
			{attr: model.AttrCity, from: []string{"commune", "city"}},
			{attr: model.AttrAddrCity, from: []string{"addr:city"}},
			{attr: model.AttrHours, from: []string{"heuresouverture", "opening_hours"}},
			{attr: model.AttrPhone, from: []string{"telephone", "phone"}},
			{attr: model.AttrEmail, from: []string{"courriel", "email"}},
			{attr: model.AttrWebsite, from: []string{"accesweb", "website"}},
			{attr: model.AttrWifi, from: []string{"wifi", "hasWifi"}},
			{attr: model.AttrInternetAccess, from: []string{"internet_access"}},
			{attr: model.AttrWheelchair, from: []string{"accessibilitehandicapemoteur", "wheelchair"}},
			{attr: model.AttrOperatorType, from: []string{"statut", "operator:type"}},
			{attr: model.AttrClosed, from: []string{"ferme"}},
		},
		address: &addressRule{street: "nomrue", postcode: "codepostal", city: "commune"},
	}
}

// MappingFor returns the ingestion spec for a category.
func MappingFor(cat model.Category) Mapping {
	switch cat {
	case model.Library:
		return LibraryMapping()
	case model.Cafe:
		return CafeMapping()
	default:
		return CoworkingMapping()
	}
}
