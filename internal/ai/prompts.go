package ai

// Price lists arrive in every broken shape imaginable; the remote
// assist is the escape hatch when the deterministic parser finds
// nothing. It is strictly best-effort: the caller treats an empty
// result exactly like an empty parse.
const priceListPrompt = `Analyze this fragment of a supplier price list file (it may be METEL or malformed CSV).
Extract a list of products with the fields: ean (or barcode), code (article code), description, price (number), brand.
If a field is missing, leave it empty or 0.

Return a JSON object: {"products": [{"ean": "...", "code": "...", "description": "...", "price": 0, "brand": "..."}]}

Data:
%s`

const identifyProductPrompt = `I have a barcode or article code: "%s".
Guess what electrical/industrial product it is.
Return a JSON object with a short description, a probable brand and an estimated price in euro:
{"description": "...", "brand": "...", "priceEstimate": 0}`
