// Package dataset loads flight schedules and keeps uploaded ones.
//
// A schedule is a CSV file with a Kode column holding flight codes; every
// other column is ignored. [Load] reduces it to the sorted, duplicate-free
// code sequence the tree is built from, and [Dataset.Prefix] selects the
// first n codes for a request.
//
// [Store] retains the raw bytes of uploaded schedules in a [cache.Cache]
// under UUID identifiers so the HTTP server and the CLI can refer to them
// later. Only raw uploads are stored; trees and renders are recomputed on
// every request.
package dataset
