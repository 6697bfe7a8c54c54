// Package openapigrid derives parameter grids from OpenAPI 3 component
// schemas so request payload variants can be swept without writing the grid by
// hand. Properties with an enum become choice lists, boolean properties become
// [true, false], object properties nest, and the x-paramgrid extension
// overrides the candidates of any property. Implementations live under
// internal/openapi to keep kin-openapi out of the public API.
package openapigrid
