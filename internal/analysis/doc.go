// Package analysis computes rolling trading volume averages from raw daily
// volume histories.
//
// Three input layouts are recognised from the header row: CoinGecko exports
// (snapped_at,...,total_volume), histories written by the fetch command
// (Date,Volume) and CoinMarketCap exports (semicolon separated). Each history
// is trimmed to the lookback window, gaps up to today are filled with zero
// volume, and the 30, 90 and 180 day averages are computed together with low
// volume day counts, running highs and the percentage change from each high.
//
// The 30 day average starts on the first day over however many days are
// available. The 90 and 180 day values stay zero until their window is full.
package analysis
