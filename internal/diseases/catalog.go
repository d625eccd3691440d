package diseases

// catalog is the built-in disease knowledge base. Registry copies it on construction.
var catalog = []Record{
	{
		ID:             "early_blight",
		Name:           "Early Blight",
		ScientificName: ptr("Alternaria solani"),
		Description:    "Early blight is a common fungal disease that affects tomato plants, causing dark spots with concentric rings on leaves.",
		Symptoms: []string{
			"Dark brown to black spots on lower leaves",
			"Concentric rings in spots (target-like appearance)",
			"Yellow halo around spots",
			"Leaf yellowing and dropping",
			"Stem lesions near soil line",
		},
		Causes: []string{
			"High humidity (above 70%)",
			"Warm temperatures (24-29°C)",
			"Poor air circulation",
			"Overhead watering",
			"Plant stress",
		},
		Treatment: []string{
			"Remove affected leaves immediately",
			"Apply copper-based fungicides",
			"Improve air circulation around plants",
			"Water at soil level, avoid wetting leaves",
			"Apply mulch to prevent soil splash",
			"Rotate crops annually",
		},
		Prevention: []string{
			"Choose resistant varieties",
			"Ensure proper plant spacing",
			"Water early morning at soil level",
			"Remove plant debris",
			"Apply preventive fungicide sprays",
		},
	},
	{
		ID:             "late_blight",
		Name:           "Late Blight",
		ScientificName: ptr("Phytophthora infestans"),
		Description:    "Late blight is a devastating disease that can quickly destroy entire tomato crops in favorable conditions.",
		Symptoms: []string{
			"Water-soaked spots on leaves",
			"Brown to black lesions with yellow borders",
			"White fuzzy growth on leaf undersides",
			"Rapid spread in cool, wet conditions",
			"Fruit rot with brown, firm lesions",
		},
		Causes: []string{
			"Cool, wet weather (15-20°C)",
			"High humidity (above 80%)",
			"Poor air circulation",
			"Infected seed or transplants",
			"Wind-blown spores",
		},
		Treatment: []string{
			"Remove and destroy affected plants immediately",
			"Apply systemic fungicides (metalaxyl-based)",
			"Improve drainage and air circulation",
			"Avoid overhead irrigation",
			"Harvest unaffected fruits early",
		},
		Prevention: []string{
			"Use certified disease-free seeds",
			"Choose resistant varieties",
			"Ensure good air circulation",
			"Apply preventive fungicide programs",
			"Monitor weather conditions closely",
		},
	},
	{
		ID:             "bacterial_spot",
		Name:           "Bacterial Spot",
		ScientificName: ptr("Xanthomonas campestris"),
		Description:    "A bacterial disease that causes small, dark spots on leaves and fruits, leading to defoliation and fruit damage.",
		Symptoms: []string{
			"Small, dark brown spots on leaves",
			"Yellow halos around spots",
			"Raised, scab-like spots on fruits",
			"Leaf yellowing and drop",
			"Reduced fruit quality",
			"Stem cankers",
		},
		Causes: []string{
			"Xanthomonas bacteria",
			"Warm, humid conditions",
			"Overhead watering",
			"Contaminated seeds",
			"Infected transplants",
			"Mechanical damage",
		},
		Treatment: []string{
			"Apply copper-based bactericides",
			"Use streptomycin sprays",
			"Remove affected plant parts",
			"Improve air circulation",
			"Avoid working with wet plants",
			"Disinfect tools regularly",
		},
		Prevention: []string{
			"Use pathogen-free seeds",
			"Choose resistant varieties",
			"Avoid overhead irrigation",
			"Ensure proper plant spacing",
			"Rotate crops",
			"Sanitize equipment",
		},
	},
	{
		ID:             "mosaic_virus",
		Name:           "Mosaic Virus",
		ScientificName: ptr("Tobacco mosaic virus"),
		Description:    "A viral disease that causes mottled patterns on leaves, stunted growth, and reduced fruit production.",
		Symptoms: []string{
			"Mottled yellow and green patterns on leaves",
			"Stunted plant growth",
			"Distorted leaf shape",
			"Reduced fruit size and yield",
			"Yellowing of leaf veins",
			"Brittle leaves",
		},
		Causes: []string{
			"Tobacco mosaic virus (TMV)",
			"Tomato mosaic virus (ToMV)",
			"Aphid transmission",
			"Contaminated tools",
			"Infected seeds",
			"Mechanical transmission",
		},
		Treatment: []string{
			"Remove infected plants immediately",
			"Control aphid populations",
			"Disinfect tools with bleach solution",
			"No chemical cure available",
			"Focus on prevention",
			"Improve plant nutrition",
		},
		Prevention: []string{
			"Use virus-free seeds",
			"Choose resistant varieties",
			"Control aphid vectors",
			"Sanitize tools regularly",
			"Avoid smoking near plants",
			"Remove infected plants promptly",
		},
	},
	{
		ID:             "yellow_virus",
		Name:           "Yellow Virus",
		ScientificName: ptr("Tomato yellow leaf curl virus"),
		Description:    "A viral disease causing yellowing of leaves, stunted growth, and poor fruit development.",
		Symptoms: []string{
			"Yellowing of upper leaves",
			"Stunted plant growth",
			"Reduced fruit production",
			"Leaf curling",
			"Interveinal chlorosis",
			"Poor fruit quality",
		},
		Causes: []string{
			"Tomato yellow leaf curl virus",
			"Whitefly transmission",
			"High temperatures",
			"Infected transplants",
			"Poor sanitation",
			"Stress conditions",
		},
		Treatment: []string{
			"Remove infected plants",
			"Control whitefly populations",
			"Use reflective mulches",
			"Apply insecticidal soaps",
			"No direct chemical treatment",
			"Support plant health",
		},
		Prevention: []string{
			"Use resistant varieties",
			"Control whitefly vectors",
			"Use physical barriers",
			"Monitor regularly",
			"Remove weeds",
			"Quarantine new plants",
		},
	},
	{
		ID:             "leaf_mold",
		Name:           "Leaf Mold",
		ScientificName: ptr("Passalora fulva"),
		Description:    "A fungal disease that causes yellow spots on upper leaf surfaces and fuzzy growth on undersides.",
		Symptoms: []string{
			"Yellow spots on upper leaf surface",
			"Fuzzy olive-green growth on leaf undersides",
			"Leaf yellowing and browning",
			"Premature leaf drop",
			"Reduced photosynthesis",
			"Poor fruit development",
		},
		Causes: []string{
			"Passalora fulva fungus",
			"High humidity (above 85%)",
			"Poor air circulation",
			"Temperatures 22-24°C",
			"Overhead watering",
			"Dense plant canopy",
		},
		Treatment: []string{
			"Improve air circulation",
			"Reduce humidity levels",
			"Apply fungicide sprays",
			"Remove affected leaves",
			"Increase spacing between plants",
			"Use resistant varieties",
		},
		Prevention: []string{
			"Ensure good ventilation",
			"Avoid overhead watering",
			"Choose resistant varieties",
			"Maintain proper spacing",
			"Monitor humidity levels",
			"Remove plant debris",
		},
	},
	{
		ID:             "septoria_leaf_spot",
		Name:           "Septoria Leaf Spot",
		ScientificName: ptr("Septoria lycopersici"),
		Description:    "A fungal disease causing small, circular spots with dark borders and light centers on leaves.",
		Symptoms: []string{
			"Small circular spots with dark borders",
			"Light gray or tan centers",
			"Black specks in spot centers",
			"Yellow halos around spots",
			"Lower leaves affected first",
			"Progressive defoliation",
		},
		Causes: []string{
			"Septoria lycopersici fungus",
			"Warm, wet weather",
			"High humidity",
			"Overhead watering",
			"Poor air circulation",
			"Infected plant debris",
		},
		Treatment: []string{
			"Apply copper-based fungicides",
			"Remove affected lower leaves",
			"Improve air circulation",
			"Avoid overhead watering",
			"Mulch around plants",
			"Use preventive sprays",
		},
		Prevention: []string{
			"Choose resistant varieties",
			"Ensure proper plant spacing",
			"Water at soil level",
			"Remove plant debris",
			"Rotate crops annually",
			"Apply preventive fungicides",
		},
	},
	{
		ID:          "healthy",
		Name:        "Healthy Plant",
		Description: "The plant appears healthy with no visible signs of disease.",
		Symptoms: []string{
			"Green, vibrant foliage",
			"No spots or lesions",
			"Normal growth pattern",
			"Good leaf color and texture",
		},
		Causes: []string{},
		Treatment: []string{
			"Continue current care routine",
			"Monitor regularly for any changes",
			"Maintain proper watering and nutrition",
		},
		Prevention: []string{
			"Maintain consistent watering schedule",
			"Ensure adequate nutrition",
			"Monitor for early signs of stress",
			"Keep growing area clean",
			"Provide proper support for plants",
		},
	},
	{
		ID:             "corn_common_rust",
		Name:           "Common Rust",
		ScientificName: ptr("Puccinia sorghi"),
		Description:    "A fungal disease that causes rust-colored pustules on corn leaves, reducing photosynthesis and yield.",
		Symptoms: []string{
			"Small, circular to oval rust-colored pustules",
			"Pustules on both leaf surfaces",
			"Yellow to brown lesions around pustules",
			"Premature leaf death",
			"Reduced plant vigor",
			"Stunted growth in severe cases",
		},
		Causes: []string{
			"Puccinia sorghi fungus",
			"Cool, moist weather (16-23°C)",
			"High humidity (above 95%)",
			"Dew formation",
			"Wind-dispersed spores",
			"Dense plant canopy",
		},
		Treatment: []string{
			"Apply fungicides (triazole-based)",
			"Remove severely affected leaves",
			"Improve air circulation",
			"Reduce plant density if possible",
			"Monitor weather conditions",
			"Apply foliar fungicides preventively",
		},
		Prevention: []string{
			"Plant resistant varieties",
			"Ensure proper plant spacing",
			"Avoid overhead irrigation",
			"Remove crop residue",
			"Rotate with non-host crops",
			"Monitor for early symptoms",
		},
	},
	{
		ID:             "corn_gray_leaf_spot",
		Name:           "Gray Leaf Spot",
		ScientificName: ptr("Cercospora zeae-maydis"),
		Description:    "A fungal disease causing rectangular gray lesions on corn leaves, leading to significant yield losses.",
		Symptoms: []string{
			"Rectangular gray to tan lesions",
			"Lesions parallel to leaf veins",
			"Yellow halos around lesions",
			"Lesions may coalesce",
			"Premature leaf senescence",
			"Reduced grain fill",
		},
		Causes: []string{
			"Cercospora zeae-maydis fungus",
			"Warm, humid conditions (22-30°C)",
			"Extended leaf wetness",
			"High relative humidity",
			"Corn residue from previous season",
			"Continuous corn cropping",
		},
		Treatment: []string{
			"Apply strobilurin fungicides",
			"Use triazole fungicides",
			"Time applications at early symptoms",
			"Ensure good spray coverage",
			"Consider multiple applications",
			"Remove infected plant debris",
		},
		Prevention: []string{
			"Plant resistant hybrids",
			"Rotate crops (2-3 year rotation)",
			"Tillage to bury crop residue",
			"Avoid continuous corn",
			"Monitor weather conditions",
			"Scout fields regularly",
		},
	},
	{
		ID:             "corn_northern_leaf_blight",
		Name:           "Northern Leaf Blight",
		ScientificName: ptr("Exserohilum turcicum"),
		Description:    "A fungal disease causing large, elliptical lesions on corn leaves, significantly reducing yield potential.",
		Symptoms: []string{
			"Large, elliptical gray-green lesions",
			"Lesions 2.5-15 cm long",
			"Tan to gray centers with dark borders",
			"Lesions may girdle leaves",
			"Premature leaf death",
			"Reduced photosynthetic area",
		},
		Causes: []string{
			"Exserohilum turcicum fungus",
			"Moderate temperatures (18-27°C)",
			"High humidity (above 90%)",
			"Extended leaf wetness (6+ hours)",
			"Corn residue",
			"Susceptible corn varieties",
		},
		Treatment: []string{
			"Apply fungicides at early symptoms",
			"Use strobilurin or triazole fungicides",
			"Ensure thorough spray coverage",
			"Consider tank mixing fungicides",
			"Time applications before tasseling",
			"Monitor disease progression",
		},
		Prevention: []string{
			"Plant resistant varieties",
			"Crop rotation with non-host crops",
			"Tillage to reduce inoculum",
			"Balanced fertilization",
			"Avoid excessive nitrogen",
			"Scout fields regularly",
		},
	},
	{
		ID:          "corn_healthy",
		Name:        "Healthy Corn",
		Description: "The corn plant appears healthy with no visible signs of disease.",
		Symptoms: []string{
			"Green, vibrant leaves",
			"No lesions or spots",
			"Normal growth and development",
			"Good leaf color and texture",
			"Proper ear development",
		},
		Causes: []string{},
		Treatment: []string{
			"Continue current management practices",
			"Monitor regularly for disease symptoms",
			"Maintain proper nutrition and irrigation",
		},
		Prevention: []string{
			"Use balanced fertilization program",
			"Ensure adequate soil drainage",
			"Monitor for early disease symptoms",
			"Maintain proper plant population",
			"Follow integrated pest management",
		},
	},
}
