package recipe

// Stored keys are trimmed inside the query so inputs never need a padded variant.
// Every value arrives as a parameter.
const (
	listAllQuery = `
MATCH (a:Author)-[:WROTE]->(r:Recipe)-[:CONTAINS_INGREDIENT]->(i:Ingredient)
RETURN trim(r.name) AS name, trim(a.name) AS author, r.skillLevel AS skillLevel, count(i) AS numberOfIngredients
ORDER BY name`

	searchByNameQuery = `
MATCH (a:Author)-[:WROTE]->(r:Recipe)-[:CONTAINS_INGREDIENT]->(i:Ingredient)
WHERE toLower(trim(r.name)) CONTAINS toLower($query)
RETURN trim(r.name) AS name, trim(a.name) AS author, r.skillLevel AS skillLevel, count(i) AS numberOfIngredients
ORDER BY name`

	// An empty $ingredients list satisfies ALL() for every recipe, including those without ingredients
	searchByIngredientsQuery = `
MATCH (a:Author)-[:WROTE]->(r:Recipe)
WHERE ALL(ingredient IN $ingredients WHERE EXISTS {
  MATCH (r)-[:CONTAINS_INGREDIENT]->(x:Ingredient) WHERE trim(x.name) = ingredient
})
OPTIONAL MATCH (r)-[:CONTAINS_INGREDIENT]->(i:Ingredient)
RETURN trim(r.name) AS name, trim(a.name) AS author, r.skillLevel AS skillLevel, count(i) AS numberOfIngredients
ORDER BY name`

	searchByAuthorQuery = `
MATCH (a:Author)-[:WROTE]->(r:Recipe)
WHERE trim(a.name) = $author
RETURN trim(r.name) AS name
ORDER BY name`

	detailsQuery = `
MATCH (r:Recipe)
WHERE trim(r.name) = $name
OPTIONAL MATCH (r)-[:CONTAINS_INGREDIENT]->(i:Ingredient)
WITH r, collect(trim(i.name)) AS ingredients
RETURN r.description AS description, r.cookingTime AS cookingTime, r.preparationTime AS preparationTime, ingredients
LIMIT 1`
)
