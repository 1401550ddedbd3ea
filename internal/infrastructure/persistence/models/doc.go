// Package models contains the GORM persistence models and their mappers.
// Domain types stay free of ORM tags; repositories convert at the boundary.
package models
