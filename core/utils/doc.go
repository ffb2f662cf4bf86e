// Package utils provides common utility functions for the stock-sync application.
// It includes loose type conversion helpers for values decoded from XML-RPC
// responses and mapping files, where numbers may arrive as strings and empty
// fields may arrive as boolean false.
package utils
