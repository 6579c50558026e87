package models

import "fmt"

// SortType is a sort order offered on the search results page
type SortType string

// Sort types
const (
	SortPopular   SortType = "popular"
	SortPriceAsc  SortType = "price-asc"
	SortPriceDesc SortType = "price-desc"
	SortNew       SortType = "new"
	SortRating    SortType = "rating"
	SortBenefit   SortType = "benefit"
)

var sortLabels = map[SortType]string{
	SortPopular:   "По популярности",
	SortPriceAsc:  "По возрастанию цены",
	SortPriceDesc: "По убыванию цены",
	SortNew:       "По новинкам",
	SortRating:    "По рейтингу",
	SortBenefit:   "Сначала выгодные",
}

// sortParams are the values of the site's sort query parameter
var sortParams = map[SortType]string{
	SortPopular:   "popular",
	SortPriceAsc:  "priceup",
	SortPriceDesc: "pricedown",
	SortNew:       "newly",
	SortRating:    "rate",
	SortBenefit:   "benefit",
}

// SortTypes lists the sort types in the order the site renders them
var SortTypes = []SortType{SortPopular, SortRating, SortPriceAsc, SortPriceDesc, SortNew, SortBenefit}

// Label returns the visible option text for the sort type
func (s SortType) Label() string {
	return sortLabels[s]
}

// Param returns the query parameter value for the sort type
func (s SortType) Param() string {
	return sortParams[s]
}

// IsValid returns true for known sort types
func (s SortType) IsValid() bool {
	_, ok := sortLabels[s]
	return ok
}

// SortTypeFromLabel maps visible option text back to its sort type
func SortTypeFromLabel(label string) (SortType, error) {
	for sortType, l := range sortLabels {
		if l == label {
			return sortType, nil
		}
	}
	return "", fmt.Errorf("unknown sort label %q", label)
}

// SortTypeFromParam maps a query parameter value back to its sort type, defaulting to popular
func SortTypeFromParam(param string) SortType {
	for sortType, p := range sortParams {
		if p == param {
			return sortType
		}
	}
	return SortPopular
}
