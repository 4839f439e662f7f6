// Package dataset loads the two Media Lens source tables and turns them into
// a cleaned, immutable in-memory Store.
//
// The pipeline has two source files: the long-form tone & volume table (one
// row per date, outlet, topic and metric) and the topic-share table. Both are
// read once at startup, cleaned in a fixed order, and never mutated again;
// every downstream view in the analytics package works on derived copies.
//
// Cleaning steps, in order:
//
//  1. Parse dates (fatal on any malformed timestamp)
//  2. Drop the incomplete year 2026
//  3. Remove zero-volume keys together with their paired tone rows
//  4. Drop topic-share rows with zero value or missing share
//  5. Clamp tone values into [-10, 10]
//  6. Drop the 2025-12-06 blackout date
//
// Any read or parse failure is fatal: Load never returns a partial Store.
package dataset
