// Package marketdata downloads daily trading volume histories from the
// CoinMarketCap historical quotes API and stores them as Date,Volume CSV
// files for the analysis package.
//
// Requests carry the API key in the X-CMC_PRO_API_KEY header and are paced
// by a token bucket limiter. Histories are capped at 364 days, the most the
// API serves in one request.
package marketdata
