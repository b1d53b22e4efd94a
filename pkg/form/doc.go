// Package form models a service desk request form: an ordered, immutable
// set of typed fields parsed from the loosely-typed JSON the customer
// portal API returns. It reconciles the document's four field sub-shapes
// (ordinary fields, template questions, remote object pickers, cascading
// selects with their synthetic subfields) into one schema that the fill
// package resolves answers against.
package form
