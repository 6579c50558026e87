package models

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseCatalogQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    CatalogQuery
		wantErr bool
	}{
		{
			name: "search only",
			raw:  "search=кроссовки",
			want: CatalogQuery{Search: "кроссовки", Sort: SortPopular, Page: 1},
		},
		{
			name: "brands and kopeck prices",
			raw:  "search=x&fbrand=671%3B21&priceU=100000%3B300000&sort=priceup&page=2",
			want: CatalogQuery{Search: "x", BrandIDs: []int64{671, 21}, MinPrice: 1000, MaxPrice: 3000, Sort: SortPriceAsc, Page: 2},
		},
		{
			name: "open maximum",
			raw:  "priceU=100000%3B0",
			want: CatalogQuery{MinPrice: 1000, Sort: SortPopular, Page: 1},
		},
		{name: "inverted prices", raw: "priceU=300000%3B100000", wantErr: true},
		{name: "one price", raw: "priceU=100000", wantErr: true},
		{name: "bad minimum", raw: "priceU=a%3B100", wantErr: true},
		{name: "bad brand", raw: "fbrand=nike", wantErr: true},
		{name: "zero page", raw: "page=0", wantErr: true},
		{name: "bad page", raw: "page=two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			got, err := ParseCatalogQuery(values)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCatalogQuery(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCatalogQuery(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCatalogQuery(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCatalogQuery_Values(t *testing.T) {
	tests := []struct {
		name string
		q    CatalogQuery
		want string
	}{
		{
			name: "defaults are omitted",
			q:    CatalogQuery{Search: "x", Sort: SortPopular, Page: 1},
			want: "search=x",
		},
		{
			name: "every parameter",
			q:    CatalogQuery{Search: "x", BrandIDs: []int64{671}, MinPrice: 1000, MaxPrice: 3000, Sort: SortPriceAsc, Page: 3},
			want: "fbrand=671&page=3&priceU=100000%3B300000&search=x&sort=priceup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Values().Encode(); got != tt.want {
				t.Errorf("Values() = %q, want %q", got, tt.want)
			}
			back, err := ParseCatalogQuery(tt.q.Values())
			if err != nil {
				t.Fatalf("ParseCatalogQuery() error = %v", err)
			}
			if !reflect.DeepEqual(back, tt.q) {
				t.Errorf("round trip = %+v, want %+v", back, tt.q)
			}
		})
	}
}

func TestCatalogQuery_IsArticle(t *testing.T) {
	tests := []struct {
		search string
		wantID int64
		wantOK bool
	}{
		{search: "146972802", wantID: 146972802, wantOK: true},
		{search: "кроссовки", wantOK: false},
		{search: "12a", wantOK: false},
		{search: "", wantOK: false},
		{search: "99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			id, ok := CatalogQuery{Search: tt.search}.IsArticle()
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("IsArticle() = %d, %v, want %d, %v", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestCatalogPage_HasNext(t *testing.T) {
	page := &CatalogPage{Query: CatalogQuery{Page: 1}, Pages: 2}
	if !page.HasNext() {
		t.Error("page 1 of 2 should have a next page")
	}
	page.Query.Page = 2
	if page.HasNext() {
		t.Error("page 2 of 2 should not have a next page")
	}
}
